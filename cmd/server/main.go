package main

import (
	"fmt"
	"os"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "E-commerce API server",
		Long: `Serves the storefront JSON API: accounts and sessions, the product catalog,
per-user carts, checkout and order history, and admin catalog management.

Settings come from defaults, an optional YAML file (--config), a .env file
and environment variables, in that order; flags win over all of them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("port", "", "HTTP port (overrides PORT)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		cfg.HTTPPort, _ = cmd.Flags().GetString("port")
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
