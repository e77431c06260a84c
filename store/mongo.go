// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/danielhkuo/same-returns/models"
)

// ResponsesCollection holds one document per stage, keyed by _id
const ResponsesCollection = "responses"

// MongoStore keeps each tally as a document {_id: stage, <label>: count, ...}
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri and pings the primary
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, unavailable("ping mongo", err)
	}

	return NewMongoStore(client, database), nil
}

// NewMongoStore uses an already connected client
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(ResponsesCollection),
	}
}

func (s *MongoStore) Increment(ctx context.Context, stage, label string) (models.Tally, error) {
	if err := validateKey(stage, label); err != nil {
		return models.Tally{}, err
	}

	filter := bson.D{{Key: models.IDField, Value: stage}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: label, Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// Two upserts raced to create the document and this one lost; the
		// document exists now so the update applies to it
		err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return models.Tally{}, unavailable("increment", err)
	}

	return tallyFromDocument(stage, doc), nil
}

func (s *MongoStore) Get(ctx context.Context, stage string) (models.Tally, error) {
	if err := validateStage(stage); err != nil {
		return models.Tally{}, err
	}

	var doc bson.M
	err := s.coll.FindOne(ctx, bson.D{{Key: models.IDField, Value: stage}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Tally{}, ErrNotFound
	}
	if err != nil {
		return models.Tally{}, unavailable("find tally", err)
	}

	return tallyFromDocument(stage, doc), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func tallyFromDocument(stage string, doc bson.M) models.Tally {
	tally := models.NewTally(stage)
	for key, value := range doc {
		if key == models.IDField {
			continue
		}
		switch n := value.(type) {
		case int32:
			tally.Counts[key] = int64(n)
		case int64:
			tally.Counts[key] = n
		case float64:
			tally.Counts[key] = int64(n)
		}
	}
	return tally
}
