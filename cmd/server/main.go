package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/refinery/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("env file load failed:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		log.Fatal("server init failed:", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("server start failed:", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	startErr := awaitStop(sigChan, srv.Failed())
	if startErr != nil {
		srv.infra.Logger.Error("startup failed", "error", startErr)
	}

	if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}

	if startErr != nil {
		log.Fatal("startup failed:", startErr)
	}

	srv.infra.Logger.Info("refinery stopped")
}

// awaitStop blocks until a stop signal arrives or startup fails, and returns
// the startup error in the latter case.
func awaitStop(signals <-chan os.Signal, failed <-chan error) error {
	select {
	case <-signals:
		return nil
	case err := <-failed:
		return err
	}
}
