package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evnex-cli/internal/client"
	"evnex-cli/internal/config"
)

var cfgFile string
var jsonOutput bool
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evnex-cli",
	Short: "A CLI for interacting with the Evnex charge point API",
	Long: `Inspect organisations, charge points, overrides, solar settings and
charging sessions on your Evnex account.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Stderr, verbose)
	},
}

// setupLogging installs the default logger. It runs after the config has
// been read so the file in use can be reported.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	if path := viper.ConfigFileUsed(); path != "" {
		slog.Debug("using config file", "path", path)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.evnex-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")

	rootCmd.PersistentFlags().StringP("username", "u", "", "Evnex account email (or EVNEX_CLIENT_USERNAME)")
	rootCmd.PersistentFlags().StringP("password", "p", "", "Evnex account password (or EVNEX_CLIENT_PASSWORD)")
	rootCmd.PersistentFlags().Duration("timeout", client.DefaultRequestTimeout, "Per request timeout")

	_ = viper.BindPFlag(config.KeyUsername, rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag(config.KeyPassword, rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
}

// Helper to build a client from flags, env and the config file.
// The first API call logs in.
func setupClient() *client.Evnex {
	cfg, err := config.ClientConfig(slog.Default())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	api, err := client.New(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return api
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func fail(what string, err error) {
	fmt.Printf("Error %s: %v\n", what, err)
	os.Exit(1)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
