package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var autoAdjustCmd = &cobra.Command{
	Use:   "auto-adjust",
	Short: "Run the automatic difficulty adjustment check for a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, planID, err := userAndPlan(cmd)
		if err != nil {
			return err
		}
		week, _ := cmd.Flags().GetInt("week")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		applied, err := a.Adaptive.AutoAdjustDifficulty(cmd.Context(), userID, planID, week)
		if err != nil {
			return fmt.Errorf("auto-adjust failed: %w", err)
		}
		if applied {
			color.Green("Adjustment applied.")
		} else {
			color.Yellow("No adjustment applied (nothing qualified or plan adjusted in the last 7 days).")
		}
		return nil
	},
}

func init() {
	addUserPlanFlags(autoAdjustCmd)
	autoAdjustCmd.Flags().Int("week", 1, "current plan week recorded on the adjustment")
}
