package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"growth-tracker/export"
	"growth-tracker/model"
	"growth-tracker/tracker"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				for _, c := range svc.Categories() {
					cmd.Println(c)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				return svc.AddCategory(args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a category and its outline (at least one must remain)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				return svc.RemoveCategory(args[0])
			})
		},
	})

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				for _, h := range svc.History(model.HistoryFilter(filter)) {
					line := h.Timestamp.Format("2006-01-02 15:04") + " [" + h.Category + "] " + h.Text
					if h.IsOverdue {
						line += " (overdue)"
					}
					cmd.Println(line)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.HistoryAll), "today|yesterday|all")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				svc.ClearHistory()
				return nil
			})
		},
	})

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak and completion counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				st := svc.Stats()
				cmd.Printf("streak: %d days\n", st.StreakDays)
				cmd.Printf("completed today: %d\n", st.TodayCompleted)
				cmd.Printf("completed total: %d\n", st.TotalCompleted)
				cmd.Printf("last active: %s\n", st.LastActiveDate)
				return nil
			})
		},
	}
}

func newRolloverCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Run the daily-reset check now",
		Long: "Applies day-boundary processing (overdue marking, streak gap check, per-day " +
			"counter reset). Idempotent within a calendar day; the check also runs implicitly " +
			"before every other command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				// withService already ran CheckDailyReset on load.
				cmd.Printf("last active: %s\n", svc.Stats().LastActiveDate)
				return nil
			})
		},
	}
}

func newResetTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-time <HH:MM>",
		Short: "Set the daily reset boundary time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				return svc.SetDailyResetTime(args[0])
			})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format, rng, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the document as JSON or text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				payload := export.NewPayload(svc.Document(), export.Range(rng), time.Now())

				var data []byte
				switch format {
				case "text", "txt":
					data = []byte(export.Text(payload))
				default:
					var err error
					data, err = export.JSON(payload)
					if err != nil {
						return err
					}
				}

				if out != "" {
					return os.WriteFile(out, data, 0o644)
				}
				cmd.Println(string(data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json|text")
	cmd.Flags().StringVarP(&rng, "range", "r", string(export.RangeAll), "today|yesterday|thisweek|all")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
