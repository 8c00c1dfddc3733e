package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/sandeepkv93/habitd/internal/logging"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/storage"
	"github.com/sandeepkv93/habitd/internal/update"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		return err
	}
	firstDay, err := cfg.Weekday()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info("starting", "store", cfg.Store, "path", cfg.StorePath(), "config", cfg.ConfigFile)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Store, cfg.StorePath())
	if err != nil {
		return err
	}
	defer store.Close()

	tracker := storage.LoadOrDefault(ctx, store, time.Now(), firstDay, logger)

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewModel(tracker, update.Options{
		Store:     store,
		Scheduler: engine,
		Logger:    logger,
		Autosave:  cfg.AutosaveInterval(),
	}), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(update.Model); ok && m.LastError != nil {
		return fmt.Errorf("save state: %w", m.LastError)
	}
	logger.Info("exited cleanly")
	return nil
}
