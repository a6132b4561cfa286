package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"yulc/internal/ast"
	"yulc/internal/codegen"
	"yulc/internal/diag"
	"yulc/internal/layout"
	"yulc/internal/lexer"
	"yulc/internal/observ"
	"yulc/internal/parser"
	"yulc/internal/source"
	"yulc/internal/symbols"
	"yulc/internal/target"
	"yulc/internal/trace"
)

// Options configures one compilation.
type Options struct {
	// Backend creates a target builder per unit; required.
	Backend target.Factory
	// BackendName keys the cache and names artifacts ("mir", "llvm").
	BackendName    string
	MaxDiagnostics int
	Layout         layout.Target
	// Cache, when set, short-circuits every stage for unchanged sources.
	Cache    *DiskCache
	Observer PhaseObserver
	// StopAfter ends the pipeline after the named phase ("" runs everything).
	StopAfter string
}

// Artifact is the textual target IR of one unit.
type Artifact struct {
	Unit string
	Text string
}

// Result holds everything a compilation produced, including partial state
// when a stage failed.
type Result struct {
	Path      string
	FileSet   *source.FileSet
	FileID    source.FileID
	Builder   *ast.Builder
	Root      ast.Root
	Context   *symbols.Context
	Units     []codegen.Unit
	Artifacts []Artifact
	Bag       *diag.Bag
	Cached    bool
	Timing    observ.Report
}

// Compile loads path into fs and runs the pipeline on it.
func Compile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	id, err := fs.Load(path)
	if err != nil {
		return &Result{Path: path, FileSet: fs}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return compileFile(ctx, fs, id, opts)
}

// CompileSource runs the pipeline on an in-memory unit.
func CompileSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) (*Result, error) {
	return compileFile(ctx, fs, fs.AddVirtual(name, content), opts)
}

// UnitName derives the name of a bare-block unit from its file path.
func UnitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func compileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	file := fs.Get(id)
	res := &Result{
		Path:    file.Path,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	switch opts.StopAfter {
	case PhaseLex, PhaseParse, PhaseResolve:
	default:
		if opts.Backend == nil {
			return res, errors.New("driver: no backend configured")
		}
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopeUnit, file.Path)
	timer := observ.NewTimer()
	defer func() {
		res.Timing = timer.Report()
		span.WithExtra("cached", fmt.Sprint(res.Cached)).End("")
	}()

	p := &pipeline{ctx: ctx, res: res, opts: opts, timer: timer, file: file}
	rep := diag.BagReporter{Bag: res.Bag}

	key := CacheKey(file.Hash, opts.BackendName, UnitName(file.Path), opts.Layout)
	if opts.Cache != nil && opts.StopAfter == "" {
		var hit bool
		err := p.phase(PhaseCache, func() error {
			entry, ok, err := opts.Cache.Get(key)
			if err != nil || !ok {
				// битый или устаревший кеш просто пересобираем
				return nil
			}
			res.Artifacts = entry.Artifacts
			res.Cached, hit = true, true
			return nil
		})
		if err != nil || hit {
			return res, err
		}
	}

	err := p.phase(PhaseLex, func() error {
		_, err := lexer.Tokenize(file, lexer.Options{Reporter: rep})
		return err
	})
	if err != nil || opts.StopAfter == PhaseLex {
		return res, err
	}

	err = p.phase(PhaseParse, func() error {
		res.Builder = ast.NewBuilder(ast.Hints{}, nil)
		parsed, err := parser.ParseFile(lexer.New(file, lexer.Options{}), res.Builder, parser.Options{Reporter: rep})
		res.Root = parsed.Root
		return err
	})
	if err != nil || opts.StopAfter == PhaseParse {
		return res, err
	}

	err = p.phase(PhaseResolve, func() error {
		var err error
		res.Context, err = symbols.Build(res.Builder, res.Root, symbols.Options{
			Reporter: rep,
			Builtins: codegen.Catalog{},
		})
		return err
	})
	if err != nil || opts.StopAfter == PhaseResolve {
		return res, err
	}

	err = p.phase(PhaseCodegen, func() error {
		var err error
		res.Units, err = codegen.Generate(res.Context, res.Builder, res.Root, opts.Backend, codegen.Options{
			Reporter: rep,
			Layout:   opts.Layout,
			Name:     UnitName(file.Path),
		})
		return err
	})
	if err != nil || opts.StopAfter == PhaseCodegen {
		return res, err
	}

	err = p.phase(PhaseEmit, func() error {
		arts, err := Emit(res.Units)
		res.Artifacts = arts
		return err
	})
	if err != nil {
		return res, err
	}

	if opts.Cache != nil {
		entry := &CacheEntry{Schema: diskCacheSchemaVersion, Path: file.Path, Backend: opts.BackendName, Artifacts: res.Artifacts}
		if perr := opts.Cache.Put(key, entry); perr != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeUnit, "cache_put_failed", perr.Error(), span.ID())
		}
	}
	return res, nil
}

type validator interface{ Validate() error }

// Emit validates every unit and renders its target IR.
func Emit(units []codegen.Unit) ([]Artifact, error) {
	arts := make([]Artifact, 0, len(units))
	for _, u := range units {
		if v, ok := u.Builder.(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("unit %s: invalid target IR: %w", u.Name, err)
			}
		}
		s, ok := u.Builder.(fmt.Stringer)
		if !ok {
			return nil, fmt.Errorf("unit %s: backend %T cannot render IR", u.Name, u.Builder)
		}
		arts = append(arts, Artifact{Unit: u.Name, Text: s.String()})
	}
	return arts, nil
}

type pipeline struct {
	ctx   context.Context
	res   *Result
	opts  Options
	timer *observ.Timer
	file  *source.File
}

// phase runs fn as one named stage: trace span, timer entry and observer
// notifications around it.
func (p *pipeline) phase(name string, fn func() error) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	notify(p.opts.Observer, PhaseEvent{File: p.file.Path, Name: name, Status: PhaseStart})
	_, span := trace.BeginCtx(p.ctx, trace.ScopePass, name)
	start := time.Now()
	done := p.timer.Track(name)

	err := fn()

	note := ""
	var de *diag.Error
	if errors.As(err, &de) {
		note = de.Code.ID()
	}
	done(note)
	span.End(note)
	notify(p.opts.Observer, PhaseEvent{File: p.file.Path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	return err
}

func notify(obs PhaseObserver, ev PhaseEvent) {
	if obs != nil {
		obs(ev)
	}
}
