package fuzztests

import (
	"context"
	"testing"
	"time"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/driver"
	"yulc/internal/lexer"
	"yulc/internal/mir"
	"yulc/internal/parser"
	"yulc/internal/source"
	"yulc/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.yul", input))

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		b := ast.NewBuilder(ast.Hints{}, nil)

		done := make(chan struct{})
		var (
			res parser.Result
			err error
		)
		go func() {
			defer close(done)
			res, err = parser.ParseFile(lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter})
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang on input of %d bytes", len(input))
		}

		if err != nil {
			if bag.Len() != 1 {
				t.Fatalf("parse error %v reported %d diagnostics", err, bag.Len())
			}
			return
		}
		if err := testkit.CheckSpanInvariants(b, res.Root, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}

// FuzzCompileMIR runs the whole pipeline; any accepted input must yield
// MIR that passes validation (driver.Emit validates every unit).
func FuzzCompileMIR(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()
		res, err := driver.CompileSource(ctx, source.NewFileSet(), "fuzz.yul", input, driver.Options{
			Backend:     mir.Factory,
			BackendName: "mir",
		})
		if err != nil {
			if res != nil && res.Bag.Len() > 1 {
				t.Fatalf("compile error %v reported %d diagnostics", err, res.Bag.Len())
			}
			return
		}
		if len(res.Artifacts) != len(res.Units) || len(res.Units) == 0 {
			t.Fatalf("artifacts=%d units=%d", len(res.Artifacts), len(res.Units))
		}
	})
}
