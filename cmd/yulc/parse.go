package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yulc/internal/diagfmt"
	"yulc/internal/driver"
	"yulc/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.yul",
	Short: "Parse a yul source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("resolve", false, "also run name resolution and report its errors")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	resolve, err := cmd.Flags().GetBool("resolve")
	if err != nil {
		return fmt.Errorf("failed to get resolve flag: %w", err)
	}
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}

	stop := driver.PhaseParse
	if resolve {
		stop = driver.PhaseResolve
	}
	res, err := driver.Compile(cmd.Context(), source.NewFileSet(), args[0], driver.Options{
		MaxDiagnostics: cli.maxDiagnostics,
		StopAfter:      stop,
	})
	if err != nil {
		return reportResult(os.Stderr, res, err, cli.pretty())
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatASTJSON(out, res.Builder, res.Root)
	} else {
		err = diagfmt.FormatASTPretty(out, res.Builder, res.Root)
	}
	if err != nil {
		return err
	}
	if cli.timings {
		return printPhaseReport(os.Stderr, res.Timing)
	}
	return nil
}
