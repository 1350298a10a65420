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
	"syscall"

	"github.com/noah-isme/toko-till/internal/checkout"
	"github.com/noah-isme/toko-till/internal/common"
	"github.com/noah-isme/toko-till/internal/config"
	"github.com/noah-isme/toko-till/internal/obs"
)

const (
	exitOK     = 0
	exitDomain = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("till", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the full quote as JSON instead of the invoice")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: till [-json] <scenario.json|->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "till: config: %v\n", err)
		return exitUsage
	}
	logger := obs.NewLoggerTo(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("cmd", "till").Logger()

	req, err := readRequest(fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "till: %v\n", err)
		return exitUsage
	}

	svc := &checkout.Service{Limits: cfg.Limits, Rounding: cfg.Rounding, Logger: &logger}
	quote, err := svc.Quote(ctx, req)
	if err != nil {
		fmt.Fprintf(stderr, "till: %s: %v\n", common.ErrorCode(err), err)
		if common.IsAppError(err) {
			return exitDomain
		}
		return exitUsage
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(quote); err != nil {
			fmt.Fprintf(stderr, "till: %v\n", err)
			return exitUsage
		}
		return exitOK
	}
	if _, err := io.WriteString(stdout, quote.Invoice); err != nil {
		fmt.Fprintf(stderr, "till: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func readRequest(path string, stdin io.Reader) (checkout.Request, error) {
	var src io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return checkout.Request{}, err
		}
		defer f.Close()
		src = f
	}
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	var req checkout.Request
	if err := dec.Decode(&req); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return checkout.Request{}, fmt.Errorf("%s: invalid JSON at offset %d: %w", path, syntax.Offset, err)
		}
		return checkout.Request{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}
