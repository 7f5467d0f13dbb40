package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evnex-cli/internal/client"
	"evnex-cli/pkg/models"
)

// inspect only reads; override changes and stops are separate commands.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Walk every organisation and charge point",
	Long: `Prints the v2 and v3 details of every charge point, then its override,
solar config and charging sessions. Offline charge points are skipped after
the details because several calls hang when the device cannot answer.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ctx := commandContext(cmd)

		user, err := api.GetUserDetail(ctx)
		if err != nil {
			fail("fetching user", err)
		}
		fmt.Println("User:", user.Name, user.Email, user.ID)

		for _, org := range user.Organisations {
			fmt.Println("Getting charge points for", org.Name)
			chargePoints, err := api.GetOrgChargePoints(ctx, org.ID)
			if err != nil {
				fail("fetching charge points", err)
			}

			for _, cp := range chargePoints {
				if err := inspectChargePoint(ctx, api, cp); err != nil {
					fmt.Printf("Warning: %s: %v\n", cp.Name, err)
				}
				fmt.Println()
			}
		}
	},
}

func inspectChargePoint(ctx context.Context, api *client.Evnex, cp models.ChargePoint) error {
	fmt.Println(cp.Name, cp.NetworkStatus, cp.Serial, cp.ID)

	fmt.Println("charge point details (API V2)")
	detail, err := api.GetChargePointDetail(ctx, cp.ID)
	if err != nil {
		return err
	}
	printDetail(detail)

	fmt.Println("charge point details (API V3)")
	detailV3, err := api.GetChargePointDetailV3(ctx, cp.ID)
	if err != nil {
		return err
	}
	printDetailV3(detailV3)

	if detailV3.IsOffline() {
		fmt.Println("Charge point offline")
		return nil
	}

	fmt.Println("Getting charge override setting")
	override, err := api.GetChargePointOverride(ctx, cp.ID)
	if errors.Is(err, client.ErrDeviceUnreachable) {
		fmt.Println("Charge point did not answer, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Charge now: %t\n", override.Enabled())

	fmt.Println("Solar Config")
	solar, err := api.GetChargePointSolarConfig(ctx, cp.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Enabled: %t Mode: %s\n", *solar.Enabled, solar.Mode)

	fmt.Println()
	fmt.Println("Getting transactions")
	txs, err := api.GetChargePointTransactions(ctx, cp.ID)
	if err != nil {
		return err
	}
	fmt.Println(len(txs), "transactions")
	if len(txs) == 0 {
		return nil
	}

	last := txs[0]
	if last.Active() {
		fmt.Println("Active Charging Session")
	} else {
		fmt.Println("Last charging session")
	}
	fmt.Printf("%s started %s, %s, %s, %s\n",
		last.ID,
		last.StartDate.Local().Format("2006-01-02 15:04:05"),
		formatDuration(last, time.Now()),
		formatEnergy(last),
		formatCost(last),
	)
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
