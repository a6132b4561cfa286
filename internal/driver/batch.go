package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"yulc/internal/source"
	"yulc/internal/trace"
)

// BatchResult pairs one input path with the outcome of its compilation.
// Every unit owns its FileSet, so results are independent.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// CompileBatch compiles paths in parallel, at most jobs at a time
// (jobs <= 0 means GOMAXPROCS). A failing unit does not stop the others;
// its error is recorded in the matching BatchResult. The returned error is
// non-nil only when ctx is cancelled. sink, if set, overrides opts.Observer.
func CompileBatch(ctx context.Context, paths []string, opts Options, jobs int, sink PhaseObserver) ([]BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if sink != nil {
		opts.Observer = sink
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "compile_batch")
	defer span.End("")

	results := make([]BatchResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		results[i].Path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			res, err := Compile(gctx, source.NewFileSet(), path, opts)
			results[i].Result = res
			results[i].Err = err
			// ошибки компиляции не отменяют остальные единицы
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failed reports how many results carry an error.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
