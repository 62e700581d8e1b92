// Package main provides a CLI for counting target characters in a text.
// Usage: charcount [-start N -end M] [-limit L] [-output text|json] TARGETS TEXT
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"charcount/internal/observability/logging"
	countUC "charcount/internal/usecase/count"
)

const usage = `Usage: charcount [-start N -end M] [-limit L] [-output text|json] TARGETS TEXT

Counts the characters of TEXT that appear in TARGETS. Each character of
TARGETS is one target; repeated targets count repeatedly. TEXT may be "-" to
read it from standard input.

Examples:
  charcount ol "hello world"
  charcount -start 0 -end 4 l "hello world"
  charcount -start 0 -end 10 -limit 2 lo "hello world"
  echo -n "hello world" | charcount -output json o -
`

// Output represents the JSON output format.
type Output struct {
	Count     int    `json:"count"`
	Operation string `json:"operation"`
	Capped    bool   `json:"capped"`
}

// discardMetrics drops business metrics; a one-shot process has no scraper.
type discardMetrics struct{}

func (discardMetrics) RecordCount(string, int, int, bool) {}
func (discardMetrics) RecordCountFailure(string, string)  {}
func (discardMetrics) RecordBatch(int)                    {}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code:
// 0 on success, 1 when counting fails, 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("charcount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	var (
		start, end, limit int
		outputFormat      string
	)
	fs.IntVar(&start, "start", 0, "inclusive start index (requires -end)")
	fs.IntVar(&end, "end", 0, "inclusive end index (requires -start)")
	fs.IntVar(&limit, "limit", 0, "stop counting after this many matches")
	fs.StringVar(&outputFormat, "output", "text", "output format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(stderr, "Error: invalid output format '%s' (must be 'text' or 'json')\n\n", outputFormat)
		fs.Usage()
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintf(stderr, "Error: expected TARGETS and TEXT, got %d argument(s)\n\n", fs.NArg())
		fs.Usage()
		return 2
	}

	targets, text := fs.Arg(0), fs.Arg(1)
	in := countUC.Input{Text: &text, Targets: &targets}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			in.Start = &start
		case "end":
			in.End = &end
		case "limit":
			in.Limit = &limit
		}
	})
	if (in.Start == nil) != (in.End == nil) {
		fmt.Fprint(stderr, "Error: -start and -end must be given together\n\n")
		fs.Usage()
		return 2
	}

	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read standard input: %v\n", err)
			return 1
		}
		text = string(data)
	}

	svc := &countUC.Service{
		Logger:  logging.New(stderr, logging.FormatText),
		Metrics: discardMetrics{},
	}
	res, err := svc.Count(context.Background(), in)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Output{Count: res.Count, Operation: res.Operation, Capped: res.Capped}); err != nil {
			fmt.Fprintf(stderr, "Error: failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	if res.Capped {
		fmt.Fprintf(stdout, "%d (limit reached)\n", res.Count)
		return 0
	}
	fmt.Fprintf(stdout, "%d\n", res.Count)
	return 0
}
