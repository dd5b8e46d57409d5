package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up, restore and inspect the database",
	}

	cmd.AddCommand(
		newBackupCreateCmd(app),
		newBackupRestoreCmd(app),
		newBackupInfoCmd(app),
		newBackupPruneCmd(app),
		newBackupScheduleCmd(app),
	)

	return cmd
}

func newBackupCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [dest]",
		Short: "Write a snapshot of the database",
		Long: `Write a consistent snapshot of the database to dest. When dest is
omitted or is a directory, the file is named clientpro_backup_YYYYMMDD_HHMMSS.db
and placed in the backup directory (or in dest).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 1 {
				dest = args[0]
			}
			path, err := app.Backups.Backup(context.Background(), dest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Backup written to "+formatter.Bold(path)))
			return nil
		},
	}
}

func newBackupRestoreCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the data with a backup, keeping a safety copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmDestructive(cmd, "Replace all current data with "+args[0]+"?", yes) {
				return nil
			}
			safety, err := app.Backups.Restore(context.Background(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success("Restored from "+formatter.Bold(args[0])))
			fmt.Fprintln(out, formatter.Dim("Previous data saved to "+safety))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newBackupInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database location, size and existing backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.Backups.Info(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBackupInfo(info))
			return nil
		},
	}
}

func newBackupPruneCmd(app *App) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete the oldest backups beyond --keep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keep") {
				keep = app.config().Backup.Keep
			}
			removed, err := app.Backups.Prune(context.Background(), keep)
			if err != nil {
				return err
			}
			printPruned(cmd.OutOrStdout(), removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Backups to keep (default: backup.keep from config; 0 keeps all)")

	return cmd
}

func printPruned(w io.Writer, removed []string) {
	if len(removed) == 0 {
		fmt.Fprintln(w, formatter.Dim("Nothing to prune."))
		return
	}
	for _, p := range removed {
		fmt.Fprintln(w, formatter.Dim("removed "+filepath.Base(p)))
	}
}

func newBackupScheduleCmd(app *App) *cobra.Command {
	var spec string
	var keep int
	var runNow bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run backups on a cron schedule until interrupted",
		Long: `Stay in the foreground and take a backup every time the cron spec fires
(backup.schedule in the config, "0 2 * * *" by default), pruning old files
down to backup.keep afterwards. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if !cmd.Flags().Changed("cron") {
				spec = cfg.Backup.Schedule
			}
			if !cmd.Flags().Changed("keep") {
				keep = cfg.Backup.Keep
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if runNow {
				runScheduledBackup(ctx, app, keep, out)
			}
			return scheduleBackups(ctx, app, spec, keep, out)
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "Cron spec overriding backup.schedule")
	cmd.Flags().IntVar(&keep, "keep", 0, "Backups to keep after each run")
	cmd.Flags().BoolVar(&runNow, "now", false, "Take one backup immediately before waiting")

	return cmd
}

// scheduleBackups blocks until ctx is done, taking a backup each time spec
// fires. A run still in progress when ctx ends is waited for.
func scheduleBackups(ctx context.Context, app *App, spec string, keep int, out io.Writer) error {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("backup schedule %q: %w", spec, err)
	}

	c := cron.New(
		cron.WithLogger(cronLogger{app.logger()}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{app.logger()})),
	)
	c.Schedule(sched, cron.FuncJob(func() { runScheduledBackup(ctx, app, keep, out) }))
	c.Start()

	fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Scheduled backups %q, next at %s. Ctrl+C to stop.",
		spec, sched.Next(app.now()).Format("02/01/2006 15:04"))))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// runScheduledBackup takes one backup and prunes. Failures are reported and
// logged but do not stop the schedule.
func runScheduledBackup(ctx context.Context, app *App, keep int, out io.Writer) {
	path, err := app.Backups.Backup(ctx, "")
	if err != nil {
		app.logger().Error("scheduled backup failed", "error", err)
		fmt.Fprintln(out, formatter.Error(err))
		return
	}
	fmt.Fprintln(out, formatter.Success("Backup written to "+path))

	removed, err := app.Backups.Prune(ctx, keep)
	if err != nil {
		app.logger().Error("backup prune failed", "error", err)
		fmt.Fprintln(out, formatter.Error(err))
		return
	}
	if len(removed) > 0 {
		printPruned(out, removed)
	}
}

// cronLogger routes cron's own logging through slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
