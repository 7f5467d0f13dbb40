package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"evnex-cli/internal/client"
)

// Config keys. With the EVNEX env prefix, client_username is read from
// EVNEX_CLIENT_USERNAME.
const (
	KeyUsername = "client_username"
	KeyPassword = "client_password"
	KeyBaseURL  = "base_url"
	KeyAuthURL  = "auth_url"
	KeyClientID = "client_id"
	KeyTimeout  = "timeout"
)

const configName = ".evnex-cli"

// InitConfig reads in config file, a .env file and ENV variables if set.
func InitConfig(cfgFile string) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".evnex-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix("EVNEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault(KeyBaseURL, client.DefaultBaseURL)
	viper.SetDefault(KeyAuthURL, client.DefaultAuthURL)
	viper.SetDefault(KeyClientID, client.DefaultClientID)
	viper.SetDefault(KeyTimeout, client.DefaultRequestTimeout)

	// If a config file is found, read it in.
	_ = viper.ReadInConfig()
}

// ClientConfig builds the Evnex client configuration from viper.
func ClientConfig(logger *slog.Logger) (client.Config, error) {
	cfg := client.Config{
		BaseURL:        viper.GetString(KeyBaseURL),
		AuthURL:        viper.GetString(KeyAuthURL),
		ClientID:       viper.GetString(KeyClientID),
		Username:       viper.GetString(KeyUsername),
		Password:       viper.GetString(KeyPassword),
		RequestTimeout: viper.GetDuration(KeyTimeout),
		Logger:         logger,
	}
	if cfg.Username == "" || cfg.Password == "" {
		return cfg, fmt.Errorf("credentials missing: set --username/--password, EVNEX_%s/EVNEX_%s or %s in the config file",
			strings.ToUpper(KeyUsername), strings.ToUpper(KeyPassword), KeyUsername)
	}
	if cfg.RequestTimeout < time.Second {
		return cfg, fmt.Errorf("timeout %s is too short", cfg.RequestTimeout)
	}
	return cfg, nil
}

// SaveProfile stores the username and endpoints in the config file. The
// password and session tokens are never written.
func SaveProfile(username string) error {
	viper.Set(KeyUsername, username)

	settings := map[string]any{
		KeyUsername: username,
		KeyBaseURL:  viper.GetString(KeyBaseURL),
		KeyAuthURL:  viper.GetString(KeyAuthURL),
		KeyClientID: viper.GetString(KeyClientID),
		KeyTimeout:  viper.GetDuration(KeyTimeout).String(),
	}

	// A fresh instance keeps env and flag values, including the password,
	// out of the written file.
	out := viper.New()
	out.SetConfigType("yaml")
	for k, v := range settings {
		out.Set(k, v)
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, configName+".yaml")
	}
	return out.WriteConfigAs(path)
}
