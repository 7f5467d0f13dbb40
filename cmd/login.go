package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evnex-cli/internal/config"
)

var saveProfile bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials against the Evnex identity provider",
	Long: `Authenticates with the provided credentials and reports whether they work.
The username and API endpoints are saved to the config file so later commands
only need the password (flag, EVNEX_CLIENT_PASSWORD, or .env). Passwords and
session tokens are never written to disk.

Example:
  evnex-cli login --username you@example.com --password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		fmt.Printf("Authenticating as user '%s'...\n", api.Config.Username)

		session, err := api.Login(commandContext(cmd))
		if err != nil {
			log.Fatalf("Fatal: Login failed: %v", err)
		}

		fmt.Printf("Login successful. Session valid until %s.\n", session.ExpiresAt.Local().Format("2006-01-02 15:04:05"))

		if !saveProfile {
			return
		}
		if err := config.SaveProfile(viper.GetString(config.KeyUsername)); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}
		fmt.Println("Profile saved. You can now run commands like 'evnex-cli chargepoints list'.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().BoolVar(&saveProfile, "save", true, "Save username and endpoints to the config file")
}
