package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wippyai/texbridge/header"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Produce the deployment header from the cgo-generated header",
	Long: `Reads the header written by "go build -buildmode=c-shared", moves the
interface include below the cgo prologue and writes texbridge.h into the
target directory ($` + header.TargetDirEnv + ` or ./target).`,
	Args: cobra.NoArgs,
	RunE: runHeader,
}

func init() {
	headerCmd.Flags().String("generated", filepath.Join("target", "cgo", "libtexbridge.h"), "header generated by cgo")
	headerCmd.Flags().String("target-dir", "", "directory receiving "+header.DeploymentName)
	headerCmd.Flags().String("include", header.DefaultInclude, "include directive to relocate")
	headerCmd.Flags().String("marker", header.DefaultMarker, "text of the line after which the include is inserted")
}

func runHeader(cmd *cobra.Command, args []string) error {
	generated, _ := cmd.Flags().GetString("generated")
	target, _ := cmd.Flags().GetString("target-dir")
	if target == "" {
		target = header.TargetDir()
	}
	include, _ := cmd.Flags().GetString("include")
	marker, _ := cmd.Flags().GetString("marker")

	out, err := header.Deploy(generated, target, header.Options{Include: include, Marker: marker})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
