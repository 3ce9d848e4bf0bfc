package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sketchboard/internal/config"
	"sketchboard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sketchboard:", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintln(os.Stderr, "sketchboard:", err)
	}

	logger, closer, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	logging.SetLogger(logger)

	p := tea.NewProgram(newModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	return nil
}

// openLog returns the file logger configured in cfg. The terminal belongs
// to the UI, so without a log file nothing is logged.
func openLog(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logging.Nop(), io.NopCloser(nil), nil
	}
	return logging.Open(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
}
