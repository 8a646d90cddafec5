package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"growth-tracker/tracker"
)

func newTomorrowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tomorrow",
		Short: "Manage the next-day todo list",
	}
	cmd.AddCommand(newTomorrowListCmd(app))
	cmd.AddCommand(newTomorrowAddCmd(app))
	cmd.AddCommand(newTomorrowDoneCmd(app))
	cmd.AddCommand(newTomorrowRmCmd(app))
	cmd.AddCommand(newTransferCmd(app))
	return cmd
}

func newTomorrowListCmd(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tomorrow's todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				printTodos(cmd, svc, svc.TomorrowTodos(category))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	return cmd
}

func newTomorrowAddCmd(app *App) *cobra.Command {
	var category, outlineID string
	var locked bool
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo for tomorrow",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return tracker.ErrInvalidText
			}
			return app.withService(func(svc *tracker.Service) error {
				todo, err := svc.AddTomorrowTodo(text, app.defaultCategory(category), outlineID, locked)
				if err != nil {
					return err
				}
				cmd.Printf("added %s [%s] %s (target %s)\n", todo.ID, todo.Category, todo.Text, todo.TargetDate)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: configured or first)")
	cmd.Flags().StringVarP(&outlineID, "outline", "o", "", "Linked outline node id")
	cmd.Flags().BoolVarP(&locked, "lock", "l", false, "Keep as a recurring template across transfers")
	return cmd
}

func newTomorrowDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion on a tomorrow todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				todo, ok := svc.ToggleTomorrowComplete(args[0])
				if !ok {
					app.log.Warn("todo not found", "id", args[0])
					return nil
				}
				cmd.Printf("%s %s\n", checkbox(todo), todo.Text)
				return nil
			})
		},
	}
}

func newTomorrowRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a tomorrow todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				if !svc.RemoveTomorrowTodo(args[0]) {
					app.log.Warn("todo not found", "id", args[0])
				}
				return nil
			})
		},
	}
}

func newTransferCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [id]",
		Short: "Move tomorrow's todos into today (all, or a single id)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				if len(args) == 1 {
					if !svc.TransferSingleToToday(args[0]) {
						app.log.Warn("todo not found", "id", args[0])
					}
					return nil
				}
				n, err := svc.TransferAllToToday()
				if errors.Is(err, tracker.ErrNothingToTransfer) {
					cmd.Println("nothing to transfer")
					return nil
				}
				if err != nil {
					return err
				}
				cmd.Printf("transferred %d todos to today\n", n)
				return nil
			})
		},
	}
}
