package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"booksearch/internal/config"
	"booksearch/internal/i18n"
	"booksearch/internal/logger"
	"booksearch/internal/search"
	"booksearch/internal/widget"
)

const historyFile = ".booksearch_history"

func main() {
	cfg := config.Get()
	if err := logger.Setup(cfg.Log.Level); err != nil {
		logrus.Fatalf("log level: %v", err)
	}
	// Keep log lines off stdout.
	logrus.SetOutput(os.Stderr)

	msgs := i18n.New(cfg.UI.Locale)
	view := newTermView(os.Stdout, os.Stderr, msgs.Searching())
	w := widget.New(search.NewFromConfig(cfg), view, msgs)
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) > 1 {
		execute(ctx, w, strings.Join(os.Args[1:], " "))
		return
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("Book search interactive shell")
	for {
		input, err := line.Prompt("booksearch> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			logrus.WithError(err).Error("prompt failed")
			return
		}
		input = strings.TrimSpace(input)
		if input == "exit" || input == "quit" {
			return
		}
		if input != "" {
			line.AppendHistory(input)
		}
		execute(ctx, w, input)
		if ctx.Err() != nil {
			return
		}
	}
}

func execute(ctx context.Context, w *widget.Widget, query string) {
	start := time.Now()
	out := w.Submit(logger.ContextWithID(ctx, logger.NewID()), query)
	if out == widget.Found {
		fmt.Printf("\n⏱ %v\n\n", time.Since(start).Round(time.Millisecond))
	}
}

func historyPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, historyFile)
	}
	return historyFile
}
