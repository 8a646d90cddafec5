// Package cli wires the cobra command tree around the tracker engine.
// Every invocation loads the document, runs the daily-reset check, applies
// the command, and flushes the document back to disk.
package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"growth-tracker/config"
	"growth-tracker/store"
	"growth-tracker/tracker"
	"growth-tracker/tui"
)

type App struct {
	ConfigPath string
	Verbose    bool

	cfg config.Config
	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "growth-tracker",
		Short:        "Personal growth tracker: outlines, daily todos, streaks",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  growth-tracker

  # Scriptable commands
  growth-tracker todo add "Read a chapter" -c 学习
  growth-tracker tomorrow transfer
  growth-tracker stats
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return app.runTUI()
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", os.Getenv("GROWTH_TRACKER_CONFIG"), "Path to config file")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(newTodoCmd(app))
	cmd.AddCommand(newTomorrowCmd(app))
	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newCategoryCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newRolloverCmd(app))
	cmd.AddCommand(newResetTimeCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

func (a *App) setup() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := log.InfoLevel
	if a.Verbose {
		level = log.DebugLevel
	} else if parsed, err := log.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}
	a.log = log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "tracker",
	})
	return nil
}

// withService runs fn against a freshly loaded engine and persists the
// result. The daily-reset check runs first, so a day boundary is processed
// no matter which command the user reached for.
func (a *App) withService(fn func(*tracker.Service) error) error {
	svc, err := a.loadService()
	if err != nil {
		return err
	}
	if err := fn(svc); err != nil {
		return err
	}
	return store.Autosave(a.cfg.DataFile, svc.Document())
}

func (a *App) loadService() (*tracker.Service, error) {
	doc, recovery, err := store.LoadWithRecovery(a.cfg.DataFile)
	if err != nil {
		return nil, err
	}
	if recovery != "" {
		a.log.Warn(recovery)
	}

	svc := tracker.NewService(doc)
	if svc.CheckDailyReset() {
		a.log.Debug("day rollover applied", "date", svc.Stats().LastActiveDate)
	}
	return svc, nil
}

func (a *App) defaultCategory(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.DefaultCategory
}

func (a *App) runTUI() error {
	svc, err := a.loadService()
	if err != nil {
		return err
	}
	if err := store.Autosave(a.cfg.DataFile, svc.Document()); err != nil {
		return err
	}
	return tui.Run(svc, a.cfg.DataFile)
}
