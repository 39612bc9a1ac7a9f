package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"booksearch/internal/config"
	"booksearch/internal/logger"
	"booksearch/internal/search"
	"booksearch/internal/webui"
)

func main() {
	cfg := config.Get()
	if err := logger.Setup(cfg.Log.Level); err != nil {
		logrus.Fatalf("log level: %v", err)
	}
	if cfg.WebAdapter.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	srv := &http.Server{
		Addr:              cfg.WebAdapter.Address(),
		Handler:           webui.New(cfg, search.NewFromConfig(cfg), logrus.StandardLogger()).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     cfg.WebAdapter.FullURL(),
			"upstream": cfg.OpenLibrary.SearchURL,
			"locale":   cfg.UI.Locale,
		}).Info("Web Adapter started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("failed to start web server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
}
