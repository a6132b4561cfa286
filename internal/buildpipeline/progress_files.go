package buildpipeline

import (
	"path/filepath"
	"strings"
)

// DisplayNames maps every input path to the name shown in progress output:
// relative to baseDir when the file lives under it, slash-separated.
// Order follows files; duplicates keep their first name.
func DisplayNames(files []string, baseDir string) []string {
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}
	out := make([]string, len(files))
	for i, file := range files {
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		out[i] = filepath.ToSlash(path)
	}
	return out
}

// artifactPath names the output file of one unit. A unit named after its
// file is stored as <stem><ext>; other units of the file get <stem>.<unit><ext>.
func artifactPath(outDir, display, unit, ext string) string {
	rel := strings.TrimSuffix(display, filepath.Ext(display))
	if strings.HasPrefix(rel, "../") || filepath.IsAbs(filepath.FromSlash(rel)) {
		rel = filepath.Base(rel)
	}
	stem := filepath.Base(rel)
	name := stem
	if unit != stem {
		name = stem + "." + unit
	}
	return filepath.Join(outDir, filepath.Dir(filepath.FromSlash(rel)), name+ext)
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageLex, Status: StatusQueued})
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
