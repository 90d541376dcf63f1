// Package cli provides the command-line interface for the finance tracker.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// addGoalCommands adds savings goal commands.
func addGoalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Savings goal management",
		Long:  "Set and review savings goals. Setting an existing goal type updates its target.",
	}

	cmd.AddCommand(newGoalSetCmd(app))
	cmd.AddCommand(newGoalListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newGoalSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <type> <target>",
		Short: "Set a goal target amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			target, err := strconv.ParseFloat(args[1], 64)
			if err != nil || target <= 0 {
				return fmt.Errorf("invalid target amount %q", args[1])
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Store.UpsertGoal(ctx, args[0], target); err != nil {
				return fmt.Errorf("failed to save goal: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"goal_type":     args[0],
					"target_amount": target,
				})
			}
			output.Success("Goal %q set to %s.", args[0], FormatUSD(target))
			return nil
		},
	}
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all goals with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			goals, err := app.Store.GetGoals(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch goals: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(goals)
			}

			if len(goals) == 0 {
				output.Info("No goals set.")
				output.Dim("Tip: fintrack goal set emergency_fund 10000")
				return nil
			}

			table := NewTable(output, "Goal", "Target", "Current", "Progress")
			for _, g := range goals {
				progress := 0.0
				if g.TargetAmount > 0 {
					progress = g.CurrentAmount / g.TargetAmount * 100
				}
				table.AddRow(
					g.Type,
					FormatUSD(g.TargetAmount),
					FormatUSD(g.CurrentAmount),
					fmt.Sprintf("%.1f%%", progress),
				)
			}
			table.Render()
			return nil
		},
	}
}
