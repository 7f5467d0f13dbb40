package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var solarID string

var solarCmd = &cobra.Command{
	Use:   "solar",
	Short: "Show the solar charging configuration",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		solar, err := api.GetChargePointSolarConfig(commandContext(cmd), solarID)
		if err != nil {
			fail("getting solar config", err)
		}

		if jsonOutput {
			printJSON(solar)
			return
		}

		fmt.Printf("Enabled: %t\n", *solar.Enabled)
		if solar.Mode != "" {
			fmt.Printf("Mode: %s\n", solar.Mode)
		}
		if solar.MinimumCurrent != nil {
			fmt.Printf("Minimum current: %.0fA\n", *solar.MinimumCurrent)
		}
		if solar.MaximumCurrent != nil {
			fmt.Printf("Maximum current: %.0fA\n", *solar.MaximumCurrent)
		}
		fmt.Printf("Power sensor installed: %t\n", solar.PowerSensorInstalled)
	},
}

func init() {
	rootCmd.AddCommand(solarCmd)

	solarCmd.Flags().StringVar(&solarID, "id", "", "ID of the charge point")
	_ = solarCmd.MarkFlagRequired("id")
}
