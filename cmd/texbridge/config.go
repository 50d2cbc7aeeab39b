package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/texbridge/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the persistent configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Open(true)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
		for _, b := range cfg.DefaultBundles() {
			fmt.Fprintf(cmd.OutOrStdout(), "  bundle: %s\n", b.URL)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  engine: %s\n", cfg.Engine().Program)
		fmt.Fprintf(cmd.OutOrStdout(), "  cache:  %s\n", cfg.CacheRoot())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the configuration file is read from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(dir, config.FileName))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
