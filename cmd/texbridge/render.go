package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/texbridge"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Typeset a TeX file (or - for stdin) to PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output PDF path (default FILE with .pdf extension, or texput.pdf for stdin)")
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]
	markup, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = defaultOutput(input)
	}

	stderr := cmd.ErrOrStderr()
	color := useColor(cmd, stderr)
	sink := newConsoleSink(stderr, color)

	art, err := texbridge.New().Render(markup, sink)
	if sink.err != nil {
		return fmt.Errorf("write diagnostics: %w", sink.err)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), sink.summary())
		return err
	}
	if !art.Found {
		fmt.Fprintln(cmd.ErrOrStderr(), sink.summary())
		return fmt.Errorf("engine finished without producing %s", art.Name)
	}

	if err := os.WriteFile(out, art.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	msg := fmt.Sprintf("wrote %s (%d bytes); %s", out, len(art.Data), sink.summary())
	if color {
		msg = resultStyle.Render(msg)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return nil
}

func readInput(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func defaultOutput(input string) string {
	if input == "-" {
		return texbridge.OutputName
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}
