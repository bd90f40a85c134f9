// Command ttsserver is the process entrypoint: load configuration, build
// the synthesis engine, and serve the HTTP API until interrupted.
// Grounded on the teacher's minimal main.go facade shape (thin delegation
// to package code) and on the sibling go-pythainlp project's zerolog
// console-writer setup idiom -- no CLI framework appears anywhere in the
// teacher's dependency graph, and a single flag doesn't warrant
// pulling one in (see DESIGN.md).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/httpapi"
	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/engine"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the process configuration file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	common.SetLogger(logger)
	log.Logger = logger

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("failed to load configuration")
	}

	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize synthesis engine")
	}
	defer eng.Close()

	addr := cfg.HTTP.IP + ":" + strconv.Itoa(int(cfg.HTTP.Port))
	server := httpapi.New(addr, eng)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

