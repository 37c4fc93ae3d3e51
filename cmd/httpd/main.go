package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/compnet/httpd"
)

var (
	port  = flag.String("port", "12345", "port number")
	file  = flag.String("file", httpd.DefaultDocument, "html document served for every request")
	debug = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	svc := &httpd.Server{
		Addr:   ":" + *port,
		Logger: &logger,
	}
	h := httpd.NewFileHandler(*file)
	h.OnUnavailable = svc.LogUnavailable
	svc.Handler = h

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		logger.Info().Stringer("signal", s).Msg("shutting down")
		_ = svc.Close()
	}()

	if err := svc.ListenAndServe(); err != nil && !errors.Is(err, httpd.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
