// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command survey walks one participant through the three stages against a
// running survey server.
//
//	go run ./cmd/survey -url http://localhost:3318
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/danielhkuo/same-returns/survey"
)

func main() {
	fs := flag.NewFlagSet("survey", flag.ExitOnError)
	baseURL := fs.String("url", envOr("SURVEY_API_URL", "http://localhost:3318"), "survey server base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "per-vote request timeout")
	fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	voter := survey.NewHTTPVoter(*baseURL, &http.Client{Timeout: *timeout})
	if err := run(ctx, os.Stdin, os.Stdout, voter); err != nil {
		slog.Error("survey aborted", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// run asks each stage until a vote is accepted, then prints the final share
func run(ctx context.Context, in io.Reader, out io.Writer, voter survey.Voter) error {
	scanner := bufio.NewScanner(in)
	flow := survey.NewFlow(voter)

	for !flow.Done() {
		stage := flow.Stage()
		fmt.Fprintf(out, "\n[%d/%d] %s\n", stage.Step, len(survey.Stages()), stage.Prompt)
		for i, opt := range stage.Options {
			fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, opt.Caption, opt.Label)
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}

		choice := parseChoice(stage, scanner.Text())
		err := flow.Choose(ctx, choice)
		switch {
		case errors.Is(err, survey.ErrUnknownChoice):
			fmt.Fprintf(out, "Please answer %s.\n", strings.Join(stage.Labels(), " or "))
			continue
		case err != nil:
			var statusErr *survey.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode >= 500 {
				fmt.Fprintln(out, "The server could not record your vote, please try again.")
				continue
			}
			return err
		}

		if tally, ok := flow.Result(); ok {
			parts := make([]string, 0, len(stage.Options))
			for _, label := range stage.Labels() {
				parts = append(parts, fmt.Sprintf("%s: %d", label, tally.Count(label)))
			}
			fmt.Fprintf(out, "Votes so far: %s\n", strings.Join(parts, ", "))
		}
	}

	pct, err := flow.Percentage()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d%% of participants would switch at a 25%% higher final value.\n", pct)
	return nil
}

// parseChoice accepts an option number or a label, case-insensitively
func parseChoice(stage survey.Stage, input string) string {
	input = strings.TrimSpace(input)
	for i, opt := range stage.Options {
		if input == fmt.Sprint(i+1) || strings.EqualFold(input, opt.Label) || strings.EqualFold(input, opt.Caption) {
			return opt.Label
		}
	}
	return input
}
