// Command challengectl calls the challenge API from the terminal.
//
//	challengectl [-url URL] categories
//	challengectl [-url URL] generate -industry fintech -role backend_engineer -difficulty hard
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/realworldcase/challenge-engine/pkg/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("challengectl", flag.ContinueOnError)
	baseURL := fs.String("url", envOr("CHALLENGE_API_URL", client.DefaultBaseURL), "challenge API base URL")
	timeout := fs.Duration("timeout", 0, "request timeout (0 waits for the server)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []client.Option{client.WithBaseURL(*baseURL)}
	if *timeout > 0 {
		opts = append(opts, client.WithTimeout(*timeout))
	}
	c := client.NewClient(opts...)

	switch fs.Arg(0) {
	case "categories":
		return printCategories(ctx, c, out)
	case "generate":
		return generate(ctx, c, fs.Args()[1:], out)
	case "":
		return errors.New("missing command: categories or generate")
	default:
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}
}

func printCategories(ctx context.Context, c *client.Client, out io.Writer) error {
	cats, err := c.FetchCategories(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(cats)
}

func generate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	industry := fs.String("industry", "any_industries", "industry value")
	role := fs.String("role", "any_role", "role value")
	difficulty := fs.String("difficulty", "any_difficulty", "difficulty value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := time.Now()
	text, err := c.GenerateChallenge(ctx, *industry, *role, *difficulty)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, text)
	fmt.Fprintf(out, "\n(generated in %s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
