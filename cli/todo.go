package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"growth-tracker/model"
	"growth-tracker/tracker"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage today's todo list",
	}
	cmd.AddCommand(newTodoListCmd(app))
	cmd.AddCommand(newTodoAddCmd(app))
	cmd.AddCommand(newTodoDoneCmd(app))
	cmd.AddCommand(newTodoRmCmd(app))
	cmd.AddCommand(newTodoLockCmd(app))
	cmd.AddCommand(newTodoStarCmd(app))
	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				printTodos(cmd, svc, svc.Todos(category))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	return cmd
}

func newTodoAddCmd(app *App) *cobra.Command {
	var category, outlineID string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return tracker.ErrInvalidText
			}
			return app.withService(func(svc *tracker.Service) error {
				todo, err := svc.AddTodo(text, app.defaultCategory(category), outlineID)
				if err != nil {
					return err
				}
				cmd.Printf("added %s [%s] %s\n", todo.ID, todo.Category, todo.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: configured or first)")
	cmd.Flags().StringVarP(&outlineID, "outline", "o", "", "Linked outline node id")
	return cmd
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion on a today todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				todo, ok := svc.ToggleTodoComplete(args[0])
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

func newTodoRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a today todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				if !svc.RemoveTodo(args[0]) {
					app.log.Warn("todo not found", "id", args[0])
				}
				return nil
			})
		},
	}
}

func newTodoLockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <id>",
		Short: "Toggle the recurring lock on an item in either list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				todo, ok := svc.ToggleLock(args[0])
				if !ok {
					app.log.Warn("item not found", "id", args[0])
					return nil
				}
				cmd.Printf("locked=%v %s\n", todo.IsLocked, todo.Text)
				return nil
			})
		},
	}
}

func newTodoStarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "star <id>",
		Short: "Toggle importance on an item in either list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				todo, ok := svc.ToggleImportant(args[0])
				if !ok {
					app.log.Warn("item not found", "id", args[0])
					return nil
				}
				cmd.Printf("important=%v %s\n", todo.IsImportant, todo.Text)
				return nil
			})
		},
	}
}

func printTodos(cmd *cobra.Command, svc *tracker.Service, todos []model.Todo) {
	for _, t := range todos {
		line := fmt.Sprintf("%s %s [%s] %s", checkbox(t), t.ID, t.Category, t.Text)
		if t.IsImportant {
			line += " ★"
		}
		if t.IsLocked {
			line += " 🔒"
		}
		if t.IsOverdue {
			line += " (overdue)"
		}
		if project := svc.OutlineText(t); project != "" {
			line += " → " + project
		}
		cmd.Println(line)
	}
}

func checkbox(t model.Todo) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
