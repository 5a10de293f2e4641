package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/readmate/readmate/internal/app"
	"github.com/readmate/readmate/internal/validation"
	"github.com/spf13/cobra"
)

func GoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage reading goals",
	}

	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsCreateCmd())
	cmd.AddCommand(goalsStatusCmd())
	cmd.AddCommand(goalsShowCmd())
	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with their progress, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				overviews, err := a.GoalService.Overviews()
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), overviews)
				}

				tw := newTable(cmd.OutOrStdout(), table.Row{"ID", "Type", "Target", "Read", "Progress", "Streak", "Status"})
				for _, o := range overviews {
					tw.AppendRow(table.Row{
						o.Goal.ID, o.Goal.Type, o.Stats.Target, o.Stats.Current,
						pct(o.Stats.Percentage), o.Streak, o.Goal.Status,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func goalsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "create <daily|monthly> <pages>",
		Short:     "Start a new goal; the current one is completed",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"daily", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			pages := validation.CoerceInt(args[1])
			return withApp(func(a *app.App) error {
				goal, err := a.GoalService.Create(args[0], pages)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), goal)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s goal of %d pages (%s)\n", goal.Type, goal.PagesPerPeriod, goal.ID)
				return nil
			})
		},
	}
}

func goalsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <active|completed|abandoned>",
		Short:     "Overwrite the status of a goal",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"active", "completed", "abandoned"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				err := a.GoalService.SetStatus(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "goal %s is now %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func goalsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a goal and its daily ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				o, err := a.GoalService.Overview(args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), o)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s goal, %d pages, %s\n", o.Goal.Type, o.Goal.PagesPerPeriod, o.Goal.Status)
				fmt.Fprintf(out, "progress %d/%d (%s), streak %d\n", o.Stats.Current, o.Stats.Target, pct(o.Stats.Percentage), o.Streak)

				tw := newTable(out, table.Row{"Date", "Pages"})
				for _, d := range o.Progress.DailyProgress {
					tw.AppendRow(table.Row{d.Date, d.PagesRead})
				}
				tw.Render()
				return nil
			})
		},
	}
}
