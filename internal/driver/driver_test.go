package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"yulc/internal/backend/llvm"
	"yulc/internal/diag"
	"yulc/internal/format"
	"yulc/internal/layout"
	"yulc/internal/mir"
	"yulc/internal/source"
	"yulc/internal/vm"
)

const sumSource = `{
    function sum(n) -> r {
        for { let i := 1 } lt(i, add(n, 1)) { i := add(i, 1) } {
            r := add(r, i)
        }
    }
    sstore(0, sum(100))
}
`

func mirOptions() Options {
	return Options{Backend: mir.Factory, BackendName: "mir"}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestCompileSourceMIR(t *testing.T) {
	res, err := CompileSource(context.Background(), source.NewFileSet(), "sum.yul", []byte(sumSource), mirOptions())
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	if len(res.Units) != 1 || res.Units[0].Name != "sum" {
		t.Fatalf("units = %+v", res.Units)
	}
	if len(res.Artifacts) != 1 || !strings.Contains(res.Artifacts[0].Text, "fn code(params=0) -> 0:") {
		t.Fatalf("unexpected artifacts %+v", res.Artifacts)
	}
	phases := make([]string, 0, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		phases = append(phases, p.Name)
	}
	want := []string{PhaseLex, PhaseParse, PhaseResolve, PhaseCodegen, PhaseEmit}
	if !slices.Equal(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}

	out, machine, err := RunUnit(context.Background(), res.Units[0], "code", vm.Options{})
	if err != nil {
		t.Fatalf("RunUnit: %v", err)
	}
	if !out.Halted && len(out.Values) != 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	var stored uint64
	for _, v := range machine.Storage {
		stored, _ = v.Uint64()
	}
	if stored != 5050 {
		t.Fatalf("storage = %d, want 5050", stored)
	}
}

func TestCompileSourceLLVM(t *testing.T) {
	res, err := CompileSource(context.Background(), source.NewFileSet(), "sum.yul", []byte(sumSource),
		Options{Backend: llvm.Factory, BackendName: "llvm"})
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	text := res.Artifacts[0].Text
	for _, want := range []string{"define void @code()", "define i256 @sum(i256 %p0)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("LLVM output lacks %q:\n%s", want, text)
		}
	}
	if _, _, err := RunUnit(context.Background(), res.Units[0], "code", vm.Options{}); err == nil {
		t.Fatalf("RunUnit must reject non-MIR units")
	}
}

func TestCompileErrorsCarryStage(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		stage diag.Stage
		code  diag.Code
		phase string
	}{
		{"lex", "{ let x := \"abc }", diag.StageLex, diag.LexUnterminatedString, PhaseLex},
		{"syntax", "{ let 1 := 2 }", diag.StageSyntax, diag.SynExpectIdentifier, PhaseParse},
		{"builder", "{ x := 1 }", diag.StageBuilder, diag.BldUnresolvedIdent, PhaseResolve},
		{"codegen", "{ break }", diag.StageCodeGen, diag.GenBreakOutsideLoop, PhaseCodegen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			var failed string
			opts := mirOptions()
			opts.Observer = func(ev PhaseEvent) {
				mu.Lock()
				defer mu.Unlock()
				if ev.Status == PhaseEnd && ev.Err != nil {
					failed = ev.Name
				}
			}
			res, err := CompileSource(context.Background(), source.NewFileSet(), "e.yul", []byte(tt.src), opts)
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not *diag.Error", err)
			}
			if de.Stage() != tt.stage || de.Code != tt.code {
				t.Fatalf("got %s %s, want %s %s", de.Stage(), de.Code.ID(), tt.stage, tt.code.ID())
			}
			if failed != tt.phase {
				t.Fatalf("failed phase = %q, want %q", failed, tt.phase)
			}
			if res.Bag.Len() != 1 {
				t.Fatalf("bag has %d diagnostics, want 1", res.Bag.Len())
			}
		})
	}
}

func TestCompileStopAfterParse(t *testing.T) {
	res, err := CompileSource(context.Background(), source.NewFileSet(), "p.yul", []byte("{ x := 1 }"), Options{StopAfter: PhaseParse})
	if err != nil {
		t.Fatalf("parse-only compile must not resolve names: %v", err)
	}
	if res.Builder == nil || res.Context != nil || res.Units != nil {
		t.Fatalf("unexpected result state %+v", res)
	}
}

func TestCompileNeedsBackend(t *testing.T) {
	if _, err := CompileSource(context.Background(), source.NewFileSet(), "b.yul", []byte("{}"), Options{}); err == nil {
		t.Fatalf("expected error without backend")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := CacheKey([32]byte{1}, "mir", "a", layout.Target{})
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	entry := &CacheEntry{Schema: diskCacheSchemaVersion, Path: "a.yul", Backend: "mir", Artifacts: []Artifact{{Unit: "a", Text: "module"}}}
	if err := cache.Put(key, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != "a.yul" || len(got.Artifacts) != 1 || got.Artifacts[0].Text != "module" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if CacheKey([32]byte{1}, "llvm", "a", layout.Target{}) == key {
		t.Fatalf("backend must be part of the key")
	}
	if CacheKey([32]byte{1}, "mir", "b", layout.Target{}) == key {
		t.Fatalf("unit name must be part of the key")
	}
	if CacheKey([32]byte{1}, "mir", "a", layout.EVM()) != key {
		t.Fatalf("zero layout must mean the default layout")
	}
	wide := layout.EVM()
	wide.MaxPointer = 0xffffffff
	if CacheKey([32]byte{1}, "mir", "a", wide) == key {
		t.Fatalf("layout must be part of the key")
	}

	stale := *entry
	stale.Schema = diskCacheSchemaVersion + 1
	if err := cache.Put(key, &stale); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatalf("entry of another schema must be a miss")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatalf("DropAll must clear entries")
	}
}

func TestCompileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "sum.yul", sumSource)
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := mirOptions()
	opts.Cache = cache

	first, err := Compile(context.Background(), source.NewFileSet(), path, opts)
	if err != nil || first.Cached {
		t.Fatalf("first compile: cached=%v err=%v", first.Cached, err)
	}
	second, err := Compile(context.Background(), source.NewFileSet(), path, opts)
	if err != nil || !second.Cached {
		t.Fatalf("second compile: cached=%v err=%v", second.Cached, err)
	}
	if second.Artifacts[0].Text != first.Artifacts[0].Text {
		t.Fatalf("cached artifact differs")
	}

	writeSource(t, dir, "sum.yul", sumSource+"\n")
	third, err := Compile(context.Background(), source.NewFileSet(), path, opts)
	if err != nil || third.Cached {
		t.Fatalf("changed source must miss: cached=%v err=%v", third.Cached, err)
	}
}

func TestCompileCacheSeparatesUnits(t *testing.T) {
	dir := t.TempDir()
	alpha := writeSource(t, dir, "alpha.yul", sumSource)
	beta := writeSource(t, dir, "beta.yul", sumSource)
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := mirOptions()
	opts.Cache = cache

	if _, err := Compile(context.Background(), source.NewFileSet(), alpha, opts); err != nil {
		t.Fatalf("compile alpha: %v", err)
	}
	res, err := Compile(context.Background(), source.NewFileSet(), beta, opts)
	if err != nil {
		t.Fatalf("compile beta: %v", err)
	}
	if res.Cached {
		t.Fatalf("same content under another name must miss the cache")
	}
	if len(res.Artifacts) == 0 || res.Artifacts[0].Unit != "beta" {
		t.Fatalf("artifacts = %+v, want unit beta", res.Artifacts)
	}
	if !strings.Contains(res.Artifacts[0].Text, `"beta"`) {
		t.Fatalf("module text names the wrong unit:\n%s", res.Artifacts[0].Text)
	}
	again, err := Compile(context.Background(), source.NewFileSet(), beta, opts)
	if err != nil || !again.Cached || again.Artifacts[0].Unit != "beta" {
		t.Fatalf("beta recompile: cached=%v err=%v", again.Cached, err)
	}
}

func TestCompileBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.yul", "{ sstore(0, 1) }"),
		writeSource(t, dir, "b.yul", "{ break }"),
		writeSource(t, dir, "c.yul", sumSource),
		filepath.Join(dir, "missing.yul"),
	}
	var mu sync.Mutex
	started := make(map[string]int)
	results, err := CompileBatch(context.Background(), paths, mirOptions(), 2, func(ev PhaseEvent) {
		if ev.Status != PhaseStart {
			return
		}
		mu.Lock()
		started[ev.File]++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("CompileBatch: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %s, want %s", i, r.Path, paths[i])
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil || results[3].Err == nil {
		t.Fatalf("expected failures for b.yul and missing.yul")
	}
	if Failed(results) != 2 {
		t.Fatalf("Failed = %d", Failed(results))
	}
	if len(started) != 3 {
		t.Fatalf("observer saw %d files, want 3", len(started))
	}
}

func TestCompileBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompileBatch(ctx, []string{writeSource(t, dir, "a.yul", "{}")}, mirOptions(), 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "t.yul", "{ pop(1) }")
	res, err := Tokenize(context.Background(), source.NewFileSet(), path, false)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	// { pop ( 1 ) } EOF
	if len(res.Tokens) != 7 {
		t.Fatalf("got %d tokens", len(res.Tokens))
	}
}

func TestFormatFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "f.yul", "{ let x := 1 }")
	res, err := FormatFile(context.Background(), source.NewFileSet(), path, format.Options{})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if !res.Changed() {
		t.Fatalf("expected a change, got %q", res.Formatted)
	}
	again := writeSource(t, dir, "g.yul", string(res.Formatted))
	res2, err := FormatFile(context.Background(), source.NewFileSet(), again, format.Options{})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if res2.Changed() {
		t.Fatalf("formatted output is not stable:\n%s\n---\n%s", res.Formatted, res2.Formatted)
	}
}
