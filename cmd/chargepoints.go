package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"evnex-cli/pkg/models"
)

// Variables to hold flag values
var (
	chargePointID string
	orgID         string
	detailV3      bool
)

// Parent Command
var chargePointsCmd = &cobra.Command{
	Use:     "chargepoints",
	Aliases: []string{"cp"},
	Short:   "Inspect charge points",
	Long:    `List the charge points of your organisations or show the details of one.`,
}

// List Command
var chargePointsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List charge points",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ctx := commandContext(cmd)

		orgIDs := []string{orgID}
		if orgID == "" {
			user, err := api.GetUserDetail(ctx)
			if err != nil {
				fail("fetching user", err)
			}
			orgIDs = orgIDs[:0]
			for _, org := range user.Organisations {
				orgIDs = append(orgIDs, org.ID)
			}
		}

		chargePoints := []models.ChargePoint{}
		for _, id := range orgIDs {
			cps, err := api.GetOrgChargePoints(ctx, id)
			if err != nil {
				fail("fetching charge points for organisation "+id, err)
			}
			chargePoints = append(chargePoints, cps...)
		}

		if jsonOutput {
			printJSON(chargePoints)
			return
		}

		if len(chargePoints) == 0 {
			fmt.Println("No charge points.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSERIAL\tSTATUS\tORG")
		fmt.Fprintln(w, "--\t----\t------\t------\t---")
		for _, cp := range chargePoints {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cp.ID,
				cp.Name,
				cp.Serial,
				cp.NetworkStatus,
				cp.OrgID,
			)
		}
		w.Flush()
	},
}

// Detail Command
var chargePointsDetailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Show charge point details",
	Example: `  evnex-cli chargepoints detail --id "charge_point_id"
  evnex-cli chargepoints detail --id "charge_point_id" --v3`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ctx := commandContext(cmd)

		if detailV3 {
			detail, err := api.GetChargePointDetailV3(ctx, chargePointID)
			if err != nil {
				fail("fetching charge point details (API V3)", err)
			}
			if jsonOutput {
				printJSON(detail)
				return
			}
			printDetailV3(detail)
			return
		}

		detail, err := api.GetChargePointDetail(ctx, chargePointID)
		if err != nil {
			fail("fetching charge point details (API V2)", err)
		}
		if jsonOutput {
			printJSON(detail)
			return
		}
		printDetail(detail)
	},
}

func printDetail(d *models.ChargePointDetail) {
	fmt.Printf("%s (%s) serial=%s status=%s\n", d.Name, d.ID, d.Serial, d.NetworkStatus)
	printConnectors(len(d.Connectors), func(i int) (string, string, string, float64) {
		c := d.Connectors[i]
		return c.ConnectorID, c.ConnectorType, c.Status, c.MaxAmperage
	})
}

func printDetailV3(d *models.ChargePointDetailV3) {
	a := d.Data.Attributes
	fmt.Printf("%s (%s) serial=%s status=%s firmware=%s\n", a.Name, d.Data.ID, a.Serial, a.NetworkStatus, a.FirmwareVersion)
	printConnectors(len(a.Connectors), func(i int) (string, string, string, float64) {
		c := a.Connectors[i]
		return c.ConnectorID, c.ConnectorType, c.Status, c.MaxAmperage
	})
}

func printConnectors(n int, row func(i int) (string, string, string, float64)) {
	if n == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CONNECTOR\tTYPE\tSTATUS\tMAX AMPS")
	for i := 0; i < n; i++ {
		id, typ, status, amps := row(i)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\n", id, typ, status, amps)
	}
	w.Flush()
}

func init() {
	// Register Parent
	rootCmd.AddCommand(chargePointsCmd)

	// Register Subcommands
	chargePointsCmd.AddCommand(chargePointsListCmd)
	chargePointsCmd.AddCommand(chargePointsDetailCmd)

	chargePointsListCmd.Flags().StringVar(&orgID, "org", "", "Only list this organisation (default all)")

	chargePointsDetailCmd.Flags().StringVar(&chargePointID, "id", "", "ID of the charge point")
	chargePointsDetailCmd.Flags().BoolVar(&detailV3, "v3", false, "Use the v3 API shape")
	_ = chargePointsDetailCmd.MarkFlagRequired("id")
}
