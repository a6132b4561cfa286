// Package buildpipeline orchestrates the compilation of a set of units:
// backend selection, parallel compilation, progress events and artifact output.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yulc/internal/driver"
	"yulc/internal/layout"
)

// BuildRequest configures a build or check.
type BuildRequest struct {
	Files   []string
	BaseDir string
	Backend Backend
	// OutDir receives one artifact per unit; empty means check only.
	OutDir         string
	Jobs           int
	MaxDiagnostics int
	Layout         layout.Target
	Cache          *driver.DiskCache
	Progress       ProgressSink
}

// FileResult is the outcome of one input file.
type FileResult struct {
	Path    string // as given
	Display string // as shown in progress output
	Result  *driver.Result
	Outputs []string
	Err     error
}

// BuildResult captures per-file results and accumulated stage timings.
type BuildResult struct {
	Files   []FileResult
	Timings Timings
	Failed  int
	Elapsed time.Duration
}

// ErrBuildFailed is returned when at least one file failed.
var ErrBuildFailed = errors.New("build failed")

// Build compiles every file of req and, when OutDir is set, writes the
// emitted target IR. Per-file failures are collected; the returned error
// wraps ErrBuildFailed when any file failed.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no sources to compile")
	}
	backend, err := ParseBackend(string(req.Backend))
	if err != nil {
		return result, err
	}

	start := time.Now()
	display := DisplayNames(req.Files, req.BaseDir)
	names := make(map[string]string, len(req.Files))
	for i, f := range req.Files {
		names[filepath.ToSlash(filepath.Clean(f))] = display[i]
	}
	emitQueued(req.Progress, display)

	opts := driver.Options{
		Backend:        backend.Factory(),
		BackendName:    string(backend),
		MaxDiagnostics: req.MaxDiagnostics,
		Layout:         req.Layout,
		Cache:          req.Cache,
	}
	observer := func(ev driver.PhaseEvent) {
		evt := Event{File: names[ev.File], Stage: Stage(ev.Name), Status: StatusWorking}
		if evt.File == "" {
			evt.File = ev.File
		}
		if ev.Status == driver.PhaseEnd {
			if ev.Err == nil {
				return
			}
			evt.Status, evt.Err, evt.Elapsed = StatusError, ev.Err, ev.Elapsed
		}
		emit(req.Progress, evt)
	}

	batch, err := driver.CompileBatch(ctx, req.Files, opts, req.Jobs, observer)
	result.Files = make([]FileResult, len(batch))
	for i, br := range batch {
		fr := FileResult{Path: br.Path, Display: display[i], Result: br.Result, Err: br.Err}
		if fr.Err == nil && req.OutDir != "" {
			wstart := time.Now()
			fr.Outputs, fr.Err = writeArtifacts(req, backend, &fr)
			result.Timings.Add(StageWrite, time.Since(wstart))
		}
		if fr.Result != nil {
			for _, p := range fr.Result.Timing.Phases {
				result.Timings.Add(Stage(p.Name), time.Duration(p.DurationMS*float64(time.Millisecond)))
			}
		}
		if fr.Err != nil {
			result.Failed++
			if br.Err == nil {
				// ошибка записи: о стадиях компилятора уже сообщено
				emit(req.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusError, Err: fr.Err})
			} else if br.Result == nil || len(br.Result.Timing.Phases) == 0 {
				emit(req.Progress, Event{File: fr.Display, Stage: StageLex, Status: StatusError, Err: fr.Err})
			}
		} else {
			done := StageEmit
			if req.OutDir != "" {
				done = StageWrite
			}
			emit(req.Progress, Event{File: fr.Display, Stage: done, Status: StatusDone, Cached: fr.Result.Cached})
		}
		result.Files[i] = fr
	}
	result.Elapsed = time.Since(start)
	if err != nil {
		return result, err
	}
	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d files", ErrBuildFailed, result.Failed, len(req.Files))
	}
	return result, nil
}

func writeArtifacts(req *BuildRequest, backend Backend, fr *FileResult) ([]string, error) {
	emit(req.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusWorking})
	var outputs []string
	for _, art := range fr.Result.Artifacts {
		path := artifactPath(req.OutDir, fr.Display, art.Unit, backend.Ext())
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return outputs, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(art.Text), 0o600); err != nil {
			return outputs, fmt.Errorf("failed to write %s: %w", path, err)
		}
		outputs = append(outputs, path)
	}
	return outputs, nil
}
