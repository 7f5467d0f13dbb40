package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"evnex-cli/pkg/models"
)

var (
	transactionsID    string
	transactionsLimit int
	stopID            string
	stopConfirm       bool
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List charging sessions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		txs, err := api.GetChargePointTransactions(commandContext(cmd), transactionsID)
		if err != nil {
			fail("getting transactions", err)
		}
		if transactionsLimit > 0 && len(txs) > transactionsLimit {
			txs = txs[:transactionsLimit]
		}

		if jsonOutput {
			printJSON(txs)
			return
		}

		if len(txs) == 0 {
			fmt.Println("No charging sessions.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tSTART\tEND\tENERGY\tCOST")
		fmt.Fprintln(w, "--\t-----\t---\t------\t----")
		for _, tx := range txs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				tx.ID,
				tx.StartDate.Local().Format("2006-01-02 15:04:05"),
				formatEnd(tx),
				formatEnergy(tx),
				formatCost(tx),
			)
		}
		w.Flush()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running charging session",
	Long: `Sends a remote stop to the charge point. The vehicle has to be plugged in
again before charging resumes. Check that the charge point is ONLINE first.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !stopConfirm {
			fmt.Println("Error: stopping a session requires --yes.")
			os.Exit(1)
		}
		api := setupClient()

		fmt.Printf("Stopping charge point %s...\n", stopID)
		if err := api.StopChargePoint(commandContext(cmd), stopID); err != nil {
			fail("stopping charge point", err)
		}
		fmt.Println("Stop accepted.")
	},
}

func formatEnd(tx models.Transaction) string {
	if tx.EndDate == nil {
		return "active"
	}
	return tx.EndDate.Local().Format("2006-01-02 15:04:05")
}

func formatEnergy(tx models.Transaction) string {
	if tx.PowerUsage == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f kWh", *tx.PowerUsage/1000)
}

func formatCost(tx models.Transaction) string {
	if tx.ElectricityCost == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f %s", tx.ElectricityCost.Cost, tx.ElectricityCost.Currency)
}

func formatDuration(tx models.Transaction, now time.Time) string {
	end := now
	if tx.EndDate != nil {
		end = *tx.EndDate
	}
	return end.Sub(tx.StartDate).Round(time.Minute).String()
}

func init() {
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(stopCmd)

	transactionsCmd.Flags().StringVar(&transactionsID, "id", "", "ID of the charge point")
	transactionsCmd.Flags().IntVar(&transactionsLimit, "limit", 0, "Show at most this many sessions")
	_ = transactionsCmd.MarkFlagRequired("id")

	stopCmd.Flags().StringVar(&stopID, "id", "", "ID of the charge point")
	stopCmd.Flags().BoolVar(&stopConfirm, "yes", false, "Confirm the stop")
	_ = stopCmd.MarkFlagRequired("id")
}
