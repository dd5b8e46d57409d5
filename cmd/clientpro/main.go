package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/clientpro/internal/cli"
	"github.com/alexanderramin/clientpro/internal/config"
	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	clientRepo := repository.NewSQLiteClientRepo(database)
	interventionRepo := repository.NewSQLiteInterventionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case timing goes to the logger only when asked for.
	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	hours := scheduler.HourRange{First: cfg.Display.FirstHour, Last: cfg.Display.LastHour}
	app := &cli.App{
		Clients:       service.NewClientService(clientRepo, uow, observers...),
		Interventions: service.NewInterventionService(interventionRepo, uow, observers...),
		Calendar:      service.NewCalendarService(interventionRepo, hours, observers...),
		Status:        service.NewStatusService(clientRepo, interventionRepo, observers...),
		Reports:       service.NewReportService(interventionRepo, observers...),
		Backups:       service.NewBackupService(database, cfg.Database.Path, cfg.Backup.Dir, clientRepo, interventionRepo, observers...),
		Export:        service.NewExportService(interventionRepo, observers...),
		Config:        cfg,
		Logger:        logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
