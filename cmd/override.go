package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	overrideID        string
	overrideChargeNow bool
)

// Parent Command
var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Manage the charge-now override",
	Long: `Read or change the override that forces charging regardless of schedule.
The charge point must be ONLINE; calls against an offline device may hang
until the request timeout.`,
}

var overrideGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the override setting",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		override, err := api.GetChargePointOverride(commandContext(cmd), overrideID)
		if err != nil {
			fail("getting charge override setting", err)
		}

		if jsonOutput {
			printJSON(override)
			return
		}
		fmt.Printf("Charge now: %t\n", override.Enabled())
	},
}

var overrideSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change the override setting",
	Example: `  evnex-cli override set --id "charge_point_id" --charge-now=false`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		state := "off"
		if overrideChargeNow {
			state = "on"
		}
		fmt.Printf("Setting charge override setting to %s on %s...\n", state, overrideID)

		if err := api.SetChargePointOverride(commandContext(cmd), overrideID, overrideChargeNow); err != nil {
			fail("setting charge override", err)
		}
		fmt.Println("Override updated successfully.")
	},
}

func init() {
	rootCmd.AddCommand(overrideCmd)
	overrideCmd.AddCommand(overrideGetCmd)
	overrideCmd.AddCommand(overrideSetCmd)

	overrideCmd.PersistentFlags().StringVar(&overrideID, "id", "", "ID of the charge point")
	_ = overrideCmd.MarkPersistentFlagRequired("id")

	overrideSetCmd.Flags().BoolVar(&overrideChargeNow, "charge-now", true, "Force charging now")
}
