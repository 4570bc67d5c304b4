package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dvcrn/jso-fetch/internal/config"
	jsohttp "github.com/dvcrn/jso-fetch/internal/http"
	"github.com/dvcrn/jso-fetch/internal/logger"
	"github.com/dvcrn/jso-fetch/jso"
	"github.com/rs/zerolog"
)

const (
	exitOK         = 0
	exitAPIFailure = 1
	exitFailure    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}

// run executes one fetch and writes the translated envelope to stdout.
// A nil httpClient selects the platform client bounded by the configured timeout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, httpClient jsohttp.HTTPClient) int {
	var url string
	if len(args) > 0 {
		url = args[0]
	}
	cfg, err := config.Load(url)

	// built after Load so ENV and LOG_LEVEL from the dotenv file apply
	log := logger.New(stderr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return exitFailure
	}

	if httpClient == nil {
		httpClient = jsohttp.NewHTTPClient(cfg.Timeout)
	}
	client := jso.NewClient(
		jso.WithHTTPClient(jsohttp.WithLogging(httpClient, log)),
		jso.WithLogger(log),
	)

	opts := &jso.RequestOptions{Method: cfg.Method, Header: cfg.Header()}
	if cfg.Body != "" {
		opts.Body = strings.NewReader(cfg.Body)
	}

	res, err := client.Fetch(ctx, cfg.URL, opts)
	if err != nil {
		return reportError(log, stdout, err)
	}

	if err := writeJSON(stdout, res); err != nil {
		log.Error().Err(err).Msg("Failed to write result")
		return exitFailure
	}
	return exitOK
}

func reportError(log *zerolog.Logger, stdout io.Writer, err error) int {
	jerr, ok := jso.AsError(err)
	if !ok {
		log.Error().Err(err).Msg("Request failed")
		return exitFailure
	}

	log.Error().
		Str("kind", jerr.Kind.String()).
		Int("status", jerr.StatusCode).
		Msg(jerr.Message)

	if !errors.Is(err, jso.ErrAPI) {
		return exitFailure
	}

	failure := struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors,omitempty"`
		Data    json.RawMessage `json:"data,omitempty"`
	}{Message: jerr.Message, Errors: jerr.Errors, Data: jerr.Data}
	if err := writeJSON(stdout, failure); err != nil {
		log.Error().Err(err).Msg("Failed to write failure")
	}
	return exitAPIFailure
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
