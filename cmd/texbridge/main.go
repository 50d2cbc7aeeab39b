package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/texbridge"
	"github.com/wippyai/texbridge/config"
)

var rootCmd = &cobra.Command{
	Use:           "texbridge",
	Short:         "Render TeX markup and build the libtexbridge deployment header",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "write debug logs to stderr")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config-dir", "", "configuration directory (default $"+config.ConfigDirEnv+" or the user config dir)")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache directory (default $"+config.CacheDirEnv+" or the user cache dir)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup configures logging and exports directory flags to the environment so
// every package resolves the same locations.
func setup(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		texbridge.SetLogger(l)
	}

	for flag, env := range map[string]string{
		"config-dir": config.ConfigDirEnv,
		"cache-dir":  config.CacheDirEnv,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			if err := os.Setenv(env, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// useColor decides whether output to w is styled. In auto mode only
// terminals are styled.
func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}
