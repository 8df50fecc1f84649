package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/terralift/terralift/internal/config"
	"github.com/terralift/terralift/internal/models"
	"github.com/terralift/terralift/internal/services"
	"github.com/terralift/terralift/internal/store"
	"github.com/terralift/terralift/internal/store/migrations"
	"github.com/terralift/terralift/pkg/commands"
	"github.com/terralift/terralift/pkg/scheduler"
)

// app wires the shared pieces used by serve and the passthrough commands.
type app struct {
	store      *store.Store
	scheduler  *scheduler.Scheduler[*models.StackResult]
	stackSrv   *services.StackService
	dispatcher *commands.Dispatcher
}

func buildApp(ctx context.Context, cfg *config.Configuration) (*app, error) {
	dbPath := ":memory:"
	if cfg.Agent.DataFolder != "" {
		if err := os.MkdirAll(cfg.Agent.DataFolder, 0o755); err != nil {
			return nil, fmt.Errorf("creating data folder: %w", err)
		}
		dbPath = filepath.Join(cfg.Agent.DataFolder, "terralift.db")
	}

	db, err := store.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening status cache db: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	st := store.NewStore(db)
	sched := scheduler.New[*models.StackResult](cfg.Agent.NumWorkers)
	stackSrv := services.NewStackService(sched, st, cfg)

	prefix := color.New(color.FgCyan).Sprint("terraform |")
	dispatcher := commands.NewDispatcher(
		services.NewCommandStacks(stackSrv),
		stackSrv,
		stackSrv.NewExecutor,
		func(line string) {
			fmt.Println(prefix, line)
		},
	)

	return &app{
		store:      st,
		scheduler:  sched,
		stackSrv:   stackSrv,
		dispatcher: dispatcher,
	}, nil
}

func (a *app) close() {
	a.scheduler.Close()
	a.store.Close()
}
