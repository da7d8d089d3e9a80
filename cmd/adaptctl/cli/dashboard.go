package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the adaptive training dashboard for a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, planID, err := userAndPlan(cmd)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.Adaptive.GetAdaptiveData(cmd.Context(), userID, planID)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}
		if view == nil {
			return fmt.Errorf("training plan %s not found", planID.Hex())
		}

		printHeader("ADAPTIVE TRAINING")
		printMetric("Current difficulty", fmt.Sprintf("%.2fx", view.CurrentDifficulty))
		printMetric("Performance score", fmt.Sprintf("%.0f%%", view.PerformanceScore*100))
		fmt.Println()

		printMetric("Workouts this week", view.WeeklyStats.WorkoutsLogged)
		printMetric("Completion", fmt.Sprintf("%.0f%%", view.WeeklyStats.CompletionRate*100))
		printMetric("Avg difficulty", fmt.Sprintf("%.1f", view.WeeklyStats.AverageDifficulty))
		printMetric("Avg effort", fmt.Sprintf("%.1f", view.WeeklyStats.AverageEffort))
		fmt.Println()

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Println(green("Recommendations:"))
		if len(view.Recommendations) == 0 {
			fmt.Println("  none")
		}
		for _, r := range view.Recommendations {
			fmt.Printf("  • [%d%%] %s\n", r.Confidence, r.Suggestion)
		}
		fmt.Println()

		fmt.Println(green("Recent adjustments:"))
		if len(view.RecentAdjustments) == 0 {
			fmt.Println("  none")
		}
		for _, adj := range view.RecentAdjustments {
			fmt.Printf("  • %s: %s (%s) %s\n", adj.Date, adj.Type, adj.Reason, adj.Multiplier)
		}
		return nil
	},
}

func init() {
	addUserPlanFlags(dashboardCmd)
}
