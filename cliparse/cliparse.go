package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrConfigurationMissing is returned when a required setting is absent
var ErrConfigurationMissing = errors.New("configuration missing")

// Storage backends
const (
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseRedis    = "redis"
	DatabaseMemory   = "memory"
)

var databaseTypes = []string{DatabaseMongo, DatabasePostgres, DatabaseSQLite, DatabaseRedis, DatabaseMemory}

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseName string
	DatabaseType string
	EnvFile      string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("same-returns", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")

	// Storage config
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Storage connection string")
	fs.StringVar(&cfg.DatabaseName, "n", "", "Storage database name")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Storage type (mongo, postgres, sqlite, redis or memory)")

	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Variables already in the environment win over the file
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = firstEnv("DATABASE_URL", "MONGODB_URI")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("%w: storage connection string (use -d or DATABASE_URL env)", ErrConfigurationMissing)
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = firstEnv("DATABASE_NAME", "MONGODB_DB")
	}
	if cfg.DatabaseName == "" {
		return Config{}, fmt.Errorf("%w: storage database name (use -n or DATABASE_NAME env)", ErrConfigurationMissing)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseMongo
		}
	}
	if !slices.Contains(databaseTypes, cfg.DatabaseType) {
		return Config{}, fmt.Errorf("invalid database type %q", cfg.DatabaseType)
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
