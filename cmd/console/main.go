package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/jwebster45206/dungeon-engine/internal/config"
	"github.com/jwebster45206/dungeon-engine/internal/journal"
	"github.com/jwebster45206/dungeon-engine/internal/logger"
	"github.com/jwebster45206/dungeon-engine/internal/storage"
	"github.com/jwebster45206/dungeon-engine/pkg/game"
	"github.com/jwebster45206/dungeon-engine/pkg/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logOut = f
	}

	sessionID := uuid.New()
	log := logger.WithSession(logger.Setup(cfg, logOut), sessionID.String())

	w, err := loadWorld(cfg, log)
	if err != nil {
		return err
	}
	if unreachable := w.Unreachable(); len(unreachable) > 0 {
		log.Warn("World has unreachable rooms", "rooms", unreachable)
	}

	seed, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
	ctrl := game.NewSession(w, cfg.PlayerName, rng, log)
	log.Info("Session started", "world", w.Name(), "player", ctrl.Player().Name(), "seed", seed)

	var rec turnRecorder
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := journal.NewClient(ctx, cfg.RedisURL, log)
		cancel()
		if err != nil {
			// the game is playable without a journal
			logger.WithError(log, err).Warn("Turn journal disabled")
			fmt.Fprintf(os.Stderr, "Warning: turn journal disabled: %v\n", err)
		} else {
			defer func() {
				_ = client.Close() // Ignore error in defer
			}()
			rec = journal.New(client, sessionID, cfg.JournalMaxEntries, log)
		}
	}

	p := tea.NewProgram(NewConsoleUI(ctrl, rec, sessionID, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("Session ended", "status", ctrl.Status())
	return nil
}

func loadWorld(cfg *config.Config, log *slog.Logger) (*world.World, error) {
	if cfg.WorldFile != "" {
		return world.Load(cfg.WorldFile)
	}
	if cfg.WorldDir == "" {
		return world.Default()
	}

	store := storage.NewWorldStore(cfg.WorldDir, log)
	worldMap, err := store.ListWorlds()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(worldMap))
	for name := range worldMap {
		names = append(names, name)
	}
	sort.Strings(names)

	switch len(names) {
	case 0:
		fmt.Fprintf(os.Stderr, "No valid worlds in %s, playing the built-in castle.\n", cfg.WorldDir)
		return world.Default()
	case 1:
		return store.LoadWorld(worldMap[names[0]])
	}

	fmt.Println("Available Worlds:")
	for i, name := range names {
		fmt.Printf("  %d - %s (%s)\n", i+1, name, worldMap[name])
	}
	fmt.Print("\nSelect a world by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(names) {
		return nil, errors.New("invalid selection")
	}
	return store.LoadWorld(worldMap[names[choice-1]])
}
