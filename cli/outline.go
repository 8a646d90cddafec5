package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"growth-tracker/model"
	"growth-tracker/tracker"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Manage per-category outline trees",
	}
	cmd.AddCommand(newOutlineListCmd(app))
	cmd.AddCommand(newOutlineAddCmd(app))
	cmd.AddCommand(newOutlineRmCmd(app))
	cmd.AddCommand(newOutlineExpandCmd(app))
	cmd.AddCommand(newOutlineLinkCmd(app))
	return cmd
}

func newOutlineListCmd(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print outline trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				categories := svc.Categories()
				if category != "" {
					categories = []string{category}
				}
				for _, c := range categories {
					cmd.Printf("[%s]\n", c)
					printForest(cmd, svc.OutlineNodes(c), 0)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	return cmd
}

func printForest(cmd *cobra.Command, nodes []*model.OutlineNode, depth int) {
	for _, node := range nodes {
		line := strings.Repeat("  ", depth) + "- " + node.Text + "  (" + node.ID + ")"
		for _, l := range node.Links {
			line += " [" + l.URL + "]"
		}
		cmd.Println(line)
		printForest(cmd, node.Children, depth+1)
	}
}

func newOutlineAddCmd(app *App) *cobra.Command {
	var category, parentID string
	var sync bool
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an outline node",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			return app.withService(func(svc *tracker.Service) error {
				node, err := svc.AddOutlineNode(text, parentID, sync, app.defaultCategory(category))
				if err != nil {
					return err
				}
				cmd.Printf("added %s (level %d)\n", node.ID, node.Level)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default: configured or first)")
	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent node id")
	cmd.Flags().BoolVar(&sync, "sync", false, "Also create a linked today-todo")
	return cmd
}

func newOutlineRmCmd(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a node and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				target := category
				if target == "" {
					// Without an explicit category, resolve where the node lives.
					if _, c, ok := svc.FindOutlineNode(args[0]); ok {
						target = c
					}
				}
				if !svc.RemoveOutlineNode(target, args[0]) {
					app.log.Warn("outline node not found", "id", args[0])
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category to search in")
	return cmd
}

func newOutlineExpandCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <id>",
		Short: "Toggle a node's expanded flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				if !svc.ToggleOutlineExpand(args[0]) {
					app.log.Warn("outline node not found", "id", args[0])
				}
				return nil
			})
		},
	}
}

func newOutlineLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage bookmarks on outline nodes",
	}

	var title string
	add := &cobra.Command{
		Use:   "add <node-id> <url>",
		Short: "Attach a link to a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withService(func(svc *tracker.Service) error {
				ok, err := svc.AddOutlineLink(args[0], args[1], title)
				if err != nil {
					return err
				}
				if !ok {
					app.log.Warn("outline node not found", "id", args[0])
				}
				return nil
			})
		},
	}
	add.Flags().StringVarP(&title, "title", "t", "", "Link title")

	var editTitle string
	edit := &cobra.Command{
		Use:   "edit <node-id> <index> <url>",
		Short: "Replace a link by index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return app.withService(func(svc *tracker.Service) error {
				ok, err := svc.UpdateOutlineLink(args[0], index, args[2], editTitle)
				if err != nil {
					return err
				}
				if !ok {
					app.log.Warn("link not found", "id", args[0], "index", index)
				}
				return nil
			})
		},
	}
	edit.Flags().StringVarP(&editTitle, "title", "t", "", "Link title")

	rm := &cobra.Command{
		Use:   "rm <node-id> <index>",
		Short: "Remove a link by index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return app.withService(func(svc *tracker.Service) error {
				if !svc.RemoveOutlineLink(args[0], index) {
					app.log.Warn("link not found", "id", args[0], "index", index)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add)
	cmd.AddCommand(edit)
	cmd.AddCommand(rm)
	return cmd
}
