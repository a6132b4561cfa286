package main

import (
	"fmt"
	"io"
	"time"

	"yulc/internal/buildpipeline"
	"yulc/internal/observ"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, includeWrite bool) error {
	if out == nil {
		return nil
	}
	front := timings.Sum(buildpipeline.StageLex, buildpipeline.StageParse, buildpipeline.StageResolve)
	if front > 0 {
		if _, err := fmt.Fprintf(out, "analysed %.1f ms\n", toMillis(front)); err != nil {
			return err
		}
	}
	if timings.Has(buildpipeline.StageCodegen) || timings.Has(buildpipeline.StageEmit) {
		gen := timings.Sum(buildpipeline.StageCodegen, buildpipeline.StageEmit)
		if _, err := fmt.Fprintf(out, "generated %.1f ms\n", toMillis(gen)); err != nil {
			return err
		}
	}
	if timings.Has(buildpipeline.StageCache) {
		if _, err := fmt.Fprintf(out, "cache %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageCache))); err != nil {
			return err
		}
	}
	if includeWrite && timings.Has(buildpipeline.StageWrite) {
		if _, err := fmt.Fprintf(out, "written %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageWrite))); err != nil {
			return err
		}
	}
	return nil
}

// printPhaseReport prints the per-phase timer of a single compilation.
func printPhaseReport(out io.Writer, rep observ.Report) error {
	for _, ph := range rep.Phases {
		line := fmt.Sprintf("%-8s %.2f ms", ph.Name, ph.DurationMS)
		if ph.Note != "" {
			line += " (" + ph.Note + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%-8s %.2f ms\n", "total", rep.TotalMS)
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
