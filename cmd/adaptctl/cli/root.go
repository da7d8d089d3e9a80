package cli

import (
	"fmt"
	"strings"

	"socialrunner/runner-app/internal/app"
	"socialrunner/runner-app/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "adaptctl",
	Short:         "Operator tool for the adaptive training engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(autoAdjustCmd, adjustCmd, dashboardCmd, tokenCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// openApp loads configuration and connects the configured backends.
func openApp() (*app.App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.New(cfg)
}

func parseIDFlag(cmd *cobra.Command, name string) (primitive.ObjectID, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return id, nil
}

func userAndPlan(cmd *cobra.Command) (primitive.ObjectID, primitive.ObjectID, error) {
	userID, err := parseIDFlag(cmd, "user")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	planID, err := parseIDFlag(cmd, "plan")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return userID, planID, nil
}

func addUserPlanFlags(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "runner ObjectID (hex)")
	cmd.Flags().String("plan", "", "training plan ObjectID (hex)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("plan")
}

// printHeader prints the title in a box.
func printHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	pad := (width - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	line := strings.Repeat(" ", pad) + title
	line += strings.Repeat(" ", width-len(line))
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + line + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func printMetric(label string, value interface{}) {
	fmt.Printf("  %s: %v\n", color.New(color.FgYellow, color.Bold).Sprint(label), value)
}
