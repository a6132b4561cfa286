package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"yulc/internal/buildpipeline"
	"yulc/internal/diag"
	"yulc/internal/diagfmt"
	"yulc/internal/driver"
	"yulc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path...]",
	Short: "Compile yul units to target IR files",
	Long: `Build compiles every unit of the project (yulc.toml [build].sources) or the
given files and directories, writing one IR file per object into the output
directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildExecution(cmd, args, true)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Compile yul units and report diagnostics without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildExecution(cmd, args, false)
	},
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, checkCmd} {
		c.Flags().String("backend", "", "target backend (llvm|mir), overrides [build].backend")
		c.Flags().Int("jobs", 0, "parallel compilations, 0 = GOMAXPROCS")
		c.Flags().Bool("no-cache", false, "bypass the compilation cache")
		c.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	}
	buildCmd.Flags().StringP("out-dir", "o", "", "output directory, overrides [build].out_dir")
}

func buildExecution(cmd *cobra.Command, args []string, write bool) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unknown format: %s", diagFormat)
	}
	uiValue, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	in, err := resolveInputs(args)
	if err != nil {
		return err
	}
	req, err := buildRequest(cmd, in, write, cli)
	if err != nil {
		return err
	}

	title := "yulc check"
	if write {
		title = "yulc build"
	}
	var res buildpipeline.BuildResult
	if shouldUseTUI(mode) && !cli.quiet && diagFormat == "pretty" {
		res, err = ui.RunBuild(cmd.Context(), os.Stdout, title, buildpipeline.DisplayNames(req.Files, req.BaseDir), req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}
	if err != nil && !errors.Is(err, buildpipeline.ErrBuildFailed) {
		return err
	}

	out := cmd.OutOrStdout()
	if diagFormat == "json" {
		if jerr := renderBuildJSON(out, res, req.BaseDir, cli); jerr != nil {
			return jerr
		}
	} else {
		renderBuildFailures(res, cli)
	}
	if cli.timings {
		if terr := printStageTimings(os.Stderr, res.Timings, write); terr != nil {
			return terr
		}
	}
	if err != nil {
		return errReported
	}
	if !cli.quiet && diagFormat == "pretty" {
		return renderBuildSummary(out, res, req, write)
	}
	return nil
}

// buildRequest merges manifest settings with command-line overrides.
func buildRequest(cmd *cobra.Command, in inputSet, write bool, cli cliOptions) (*buildpipeline.BuildRequest, error) {
	cfg := in.config()
	if cmd.Flags().Changed("backend") {
		v, err := cmd.Flags().GetString("backend")
		if err != nil {
			return nil, err
		}
		cfg.Build.Backend = v
	}
	backend, err := buildpipeline.ParseBackend(cfg.Build.Backend)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("jobs") {
		if cfg.Build.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	req := &buildpipeline.BuildRequest{
		Files:          in.files,
		BaseDir:        in.baseDir,
		Backend:        backend,
		Jobs:           cfg.Build.Jobs,
		MaxDiagnostics: cli.maxDiagnostics,
	}
	if write {
		req.OutDir, err = outputDir(cmd, in)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Build.Cache && !noCache {
		cache, cerr := driver.OpenDiskCache("yulc")
		if cerr != nil {
			if !cli.quiet {
				fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", cerr)
			}
		} else {
			req.Cache = cache
		}
	}
	return req, nil
}

func outputDir(cmd *cobra.Command, in inputSet) (string, error) {
	if cmd.Flags().Changed("out-dir") {
		dir, err := cmd.Flags().GetString("out-dir")
		if err != nil {
			return "", err
		}
		return filepath.Abs(dir)
	}
	if in.manifest != nil {
		return in.manifest.OutDir(), nil
	}
	return filepath.Join(in.baseDir, in.config().Build.OutDir), nil
}

func renderBuildFailures(res buildpipeline.BuildResult, cli cliOptions) {
	for _, fr := range res.Files {
		if fr.Err == nil {
			continue
		}
		if rerr := reportResult(os.Stderr, fr.Result, fr.Err, cli.pretty()); rerr != nil && !errors.Is(rerr, errReported) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fr.Display, rerr)
		}
	}
}

// renderBuildJSON prints the diagnostics of every file as one document.
func renderBuildJSON(out io.Writer, res buildpipeline.BuildResult, baseDir string, cli cliOptions) error {
	all := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
	for _, fr := range res.Files {
		var de *diag.Error
		if fr.Err != nil && !errors.As(fr.Err, &de) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fr.Display, fr.Err)
		}
		if fr.Result == nil || fr.Result.Bag == nil {
			continue
		}
		fr.Result.Bag.Sort()
		part := diagfmt.BuildDiagnosticsOutput(fr.Result.Bag, fr.Result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			BaseDir:          baseDir,
			IncludeNotes:     true,
		})
		all.Diagnostics = append(all.Diagnostics, part.Diagnostics...)
	}
	if cli.maxDiagnostics > 0 && len(all.Diagnostics) > cli.maxDiagnostics {
		all.Diagnostics = all.Diagnostics[:cli.maxDiagnostics]
	}
	all.Count = len(all.Diagnostics)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(all)
}

func renderBuildSummary(out io.Writer, res buildpipeline.BuildResult, req *buildpipeline.BuildRequest, write bool) error {
	cached := 0
	for _, fr := range res.Files {
		if fr.Result != nil && fr.Result.Cached {
			cached++
		}
	}
	verb := "checked"
	if write {
		verb = "built"
	}
	line := fmt.Sprintf("%s %d unit(s) with %s in %.1f ms", verb, len(res.Files), req.Backend, toMillis(res.Elapsed))
	if cached > 0 {
		line += fmt.Sprintf(", %d cached", cached)
	}
	if _, err := fmt.Fprintln(out, line); err != nil {
		return err
	}
	if !write {
		return nil
	}
	for _, fr := range res.Files {
		for _, p := range fr.Outputs {
			if _, err := fmt.Fprintf(out, "  %s\n", formatPathForOutput(req.BaseDir, p)); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
