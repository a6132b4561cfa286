package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"yulc/internal/driver"
	"yulc/internal/format"
	"yulc/internal/lexer"
	"yulc/internal/source"
	"yulc/internal/token"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format yul source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("force", false, "rewrite files even if their comments would be lost")
	fmtCmd.Flags().Int("indent", 4, "spaces per indentation level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
}

// fmtFileResult is one line of `fmt --format json`.
type fmtFileResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written,omitempty"`
	Skipped string `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unknown format %q (expected text|json)", outputFormat)
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}

	in, err := resolveInputs(args)
	if err != nil {
		return err
	}
	opts := format.Options{IndentWidth: indent, UseTabs: tabs}
	out := cmd.OutOrStdout()

	var results []fmtFileResult
	var hasErrors, hasChanges bool
	for _, path := range in.files {
		fs := source.NewFileSet()
		res, ferr := driver.FormatFile(cmd.Context(), fs, path, opts)
		entry := fmtFileResult{Path: path}
		if ferr != nil {
			hasErrors = true
			entry.Error = ferr.Error()
			results = append(results, entry)
			if outputFormat == "text" {
				if rerr := reportResult(os.Stderr, res.Result, ferr, cli.pretty()); rerr != nil && !errors.Is(rerr, errReported) {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, rerr)
				}
			}
			continue
		}
		entry.Changed = res.Changed()
		hasChanges = hasChanges || entry.Changed

		switch {
		case writeToStdout:
			if _, err := out.Write(res.Formatted); err != nil {
				return err
			}
		case check || !entry.Changed:
		case hasComments(fs.Get(res.FileID)) && !force:
			entry.Skipped = "comments would be lost (use --force)"
		default:
			if err := os.WriteFile(path, res.Formatted, 0o600); err != nil {
				hasErrors = true
				entry.Error = err.Error()
			} else {
				entry.Written = true
			}
		}
		results = append(results, entry)
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else if !writeToStdout {
		renderFmtText(out, results, check, cli.quiet)
	}

	if hasErrors {
		return errReported
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: some files are not formatted")
	}
	return nil
}

func renderFmtText(out io.Writer, results []fmtFileResult, check, quiet bool) {
	for _, r := range results {
		switch {
		case r.Error != "":
			// уже напечатано в stderr
		case r.Skipped != "":
			fmt.Fprintf(out, "skipped %s: %s\n", r.Path, r.Skipped)
		case check && r.Changed:
			fmt.Fprintf(out, "%s\n", r.Path)
		case r.Written && !quiet:
			fmt.Fprintf(out, "formatted %s\n", r.Path)
		}
	}
}

// hasComments reports whether the file carries comments the printer drops.
func hasComments(f *source.File) bool {
	toks, err := lexer.Tokenize(f, lexer.Options{KeepTrivia: true})
	if err != nil {
		return true
	}
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaLineComment || tr.Kind == token.TriviaBlockComment {
				return true
			}
		}
	}
	return false
}
