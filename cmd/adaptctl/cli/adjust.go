package cli

import (
	"fmt"

	"socialrunner/runner-app/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Apply a manual adjustment and print the session changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, planID, err := userAndPlan(cmd)
		if err != nil {
			return err
		}
		adjustmentType, _ := cmd.Flags().GetString("type")
		week, _ := cmd.Flags().GetInt("week")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.Adaptive.ApplyManualAdjustment(cmd.Context(), userID, planID, domain.AdjustmentType(adjustmentType), week)
		if err != nil {
			return fmt.Errorf("adjustment failed: %w", err)
		}

		printHeader(summary.Title)
		fmt.Println(summary.Description)
		fmt.Println()
		printMetric("Multiplier", summary.Multiplier)
		printMetric("Sessions modified", summary.SessionsModified)
		printMetric("Weeks affected", summary.WeeksAffected)
		fmt.Println()

		magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()
		for _, ch := range summary.SampleChanges {
			fmt.Printf("  • %s week %d %s: %s @ %s → %s @ %s\n",
				magenta(ch.Impact), ch.Week, ch.Day, ch.PreviousDistance, ch.PreviousPace, ch.NewDistance, ch.NewPace)
		}
		fmt.Println()
		fmt.Println(summary.AverageDistanceChange)
		color.Green(summary.NextSteps)
		return nil
	},
}

func init() {
	addUserPlanFlags(adjustCmd)
	adjustCmd.Flags().String("type", string(domain.AdjustmentDifficultyIncrease), "adjustment type (difficulty_increase, difficulty_decrease, ...)")
	adjustCmd.Flags().Int("week", 1, "week number recorded on the adjustment")
}
