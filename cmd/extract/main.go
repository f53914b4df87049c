// Command extract runs the grade-report parser over a PDF or plain-text file
// and prints the records and GPA figures as JSON. With -roast it also asks the
// configured model for a roast, which is handy for prompt iteration.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
	"github.com/faizanfirdousi/roast-my-gpa/common/logger"
	"github.com/faizanfirdousi/roast-my-gpa/core/config"
	"github.com/faizanfirdousi/roast-my-gpa/internal/pdftext"
	"github.com/faizanfirdousi/roast-my-gpa/internal/service"
	"github.com/faizanfirdousi/roast-my-gpa/internal/store"
)

const noSubjectsMessage = "Could not parse any subjects and grades from the PDF."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	roast := fs.Bool("roast", false, "also generate a roast with the configured LLM (needs LLM_API_KEY)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: extract [-roast] <report.pdf|report.txt>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	text, err := readText(ctx, path)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) {
			fmt.Fprintln(stderr, noSubjectsMessage)
			return 1
		}
		fmt.Fprintf(stderr, "failed to read %s: %v\n", path, err)
		return 1
	}

	result, err := service.NewExtractService().Extract(ctx, text)
	if err != nil {
		fmt.Fprintln(stderr, noSubjectsMessage)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "failed to encode result: %v\n", err)
		return 1
	}

	if *roast {
		if err := printRoast(ctx, filepath.Base(path), text, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "roast failed: %v\n", err)
			return 1
		}
	}
	return 0
}

// readText treats .pdf files as PDFs and everything else as UTF-8 text.
func readText(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdftext.ExtractFile(ctx, pdftext.NewExtractor(), path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func printRoast(ctx context.Context, fileName, text string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg, stderr)))

	if !cfg.LLM.Enabled() {
		return errors.New("LLM_API_KEY or GEMINI_API_KEY is required for -roast")
	}

	client, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		return err
	}

	result, err := service.NewRoastService(client, store.NoopRoastCache{}, service.RoastConfig{
		MaxTokens:   cfg.LLM.MaxTokens,
		MaxAttempts: cfg.LLM.MaxAttempts,
	}).Roast(ctx, service.RoastParams{FileName: fileName, Text: text})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%s\n", result.Roast)
	return nil
}
