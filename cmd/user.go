package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the account and its organisations",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		user, err := api.GetUserDetail(commandContext(cmd))
		if err != nil {
			fail("fetching user", err)
		}

		if jsonOutput {
			printJSON(user)
			return
		}

		fmt.Println("User:", user.Name, user.Email, user.ID)
		if len(user.Organisations) == 0 {
			fmt.Println("No organisations.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ORG ID\tNAME\tDEFAULT")
		fmt.Fprintln(w, "------\t----\t-------")
		for _, org := range user.Organisations {
			fmt.Fprintf(w, "%s\t%s\t%t\n", org.ID, org.Name, org.IsDefault)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
