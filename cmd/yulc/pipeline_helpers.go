package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"yulc/internal/diag"
	"yulc/internal/diagfmt"
	"yulc/internal/driver"
	"yulc/internal/project"
	"yulc/internal/source"
)

// errReported means diagnostics were already printed; main exits with 1
// without repeating them.
var errReported = errors.New("diagnostics reported")

const noManifestMessage = "no yulc.toml found in this directory or above; pass source files or run `yulc init`"

// cliOptions are the global flags every command reads.
type cliOptions struct {
	maxDiagnostics int
	quiet          bool
	timings        bool
	color          bool // stderr diagnostics
}

func readCLIOptions(cmd *cobra.Command) (cliOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts cliOptions
	var err error
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = colorEnabled(colorFlag, os.Stderr); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o cliOptions) pretty() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     o.color,
		Context:   2,
		ShowNotes: true,
		Max:       o.maxDiagnostics,
	}
}

// reportDiagnostics prints the bag of a compilation and turns a diagnosed
// failure into errReported. Other errors are returned unchanged.
func reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, err error, opts diagfmt.PrettyOpts) error {
	printed := false
	if bag != nil && bag.Len() > 0 {
		bag.Sort()
		if perr := diagfmt.Pretty(w, bag, fs, opts); perr != nil {
			return perr
		}
		printed = bag.HasErrors()
	}
	if err == nil {
		return nil
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		return err
	}
	if !printed {
		if perr := diagfmt.PrettyError(w, de, fs, opts); perr != nil {
			return perr
		}
	}
	return errReported
}

func reportResult(w io.Writer, res *driver.Result, err error, opts diagfmt.PrettyOpts) error {
	if res == nil {
		return err
	}
	return reportDiagnostics(w, res.Bag, res.FileSet, err, opts)
}

// inputSet is what a multi-file command works on.
type inputSet struct {
	files    []string
	baseDir  string
	manifest *project.Manifest // nil outside a project
}

// resolveInputs expands explicit arguments (files or directories) or, with
// none given, the sources of the enclosing yulc.toml.
func resolveInputs(args []string) (inputSet, error) {
	manifest, found, err := project.Load(".")
	if err != nil {
		return inputSet{}, err
	}
	if len(args) == 0 {
		if !found {
			return inputSet{}, errors.New(noManifestMessage)
		}
		files, err := manifest.SourceFiles()
		if err != nil {
			return inputSet{}, err
		}
		return inputSet{files: files, baseDir: manifest.Root, manifest: manifest}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return inputSet{}, err
	}
	adhoc := &project.Manifest{
		Path: "command line",
		Root: wd,
		Config: project.Config{
			Build: project.BuildConfig{Sources: args},
		},
	}
	files, err := adhoc.SourceFiles()
	if err != nil {
		return inputSet{}, err
	}
	if len(files) == 0 {
		return inputSet{}, fmt.Errorf("no %s files in %v", project.SourceExt, args)
	}
	in := inputSet{files: files, baseDir: wd}
	if found {
		in.manifest = manifest
	}
	return in, nil
}

// config returns the manifest configuration or the defaults outside a project.
func (in inputSet) config() project.Config {
	if in.manifest != nil {
		return in.manifest.Config
	}
	return project.Defaults()
}
