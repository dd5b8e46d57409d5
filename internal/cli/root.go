package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/clientpro/internal/config"
	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Clients       service.ClientService
	Interventions service.InterventionService
	Calendar      service.CalendarService
	Status        service.StatusService
	Reports       service.ReportService
	Backups       service.BackupService
	Export        service.ExportService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. When nil the TUI
	// is never launched implicitly.
	IsInteractive func() bool

	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) config() *config.Config {
	if a.Config != nil {
		return a.Config
	}
	return config.DefaultConfig()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "clientpro" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "clientpro",
		Short: "Client and intervention tracker",
		Long: `clientpro keeps a register of clients and the interventions done for
them, shows the week calendar with overlap warnings, and produces
activity reports. Run without arguments in a terminal to open the TUI.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newClientCmd(app),
		newInterventionCmd(app),
		newCalendarCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newBackupCmd(app),
		newExportCmd(app),
		newTUICmd(app),
	)

	return root
}
