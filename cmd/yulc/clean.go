package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yulc/internal/driver"
	"yulc/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [flags]",
	Short: "Remove build output and the compilation cache",
	Long:  "Remove the project's output directory ([build].out_dir) and, with --cache, the shared compilation cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the compilation cache")
}

func runClean(cmd *cobra.Command, _ []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	manifest, found, err := project.Load(".")
	if err != nil {
		return err
	}
	if found {
		outDir := manifest.OutDir()
		info, err := os.Stat(outDir)
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(out, "output directory not found\n")
		case err != nil:
			return fmt.Errorf("failed to stat %q: %w", outDir, err)
		case !info.IsDir():
			return fmt.Errorf("%q is not a directory", outDir)
		default:
			if err := os.RemoveAll(outDir); err != nil {
				return fmt.Errorf("failed to remove %q: %w", outDir, err)
			}
			fmt.Fprintf(out, "removed %s\n", formatPathForOutput(manifest.Root, outDir))
		}
	} else if !dropCache {
		return errors.New(noManifestMessage)
	}

	if dropCache {
		cache, err := driver.OpenDiskCache("yulc")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		fmt.Fprintf(out, "dropped cache %s\n", cache.Dir())
	}
	return nil
}
