package format

import (
	"bytes"
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/lexer"
	"yulc/internal/parser"
	"yulc/internal/source"
)

// CheckRoundTrip formats sf, re-parses the output and formats it again. The
// two printed forms must be identical.
func CheckRoundTrip(sf *source.File, opt Options) (ok bool, msg string) {
	b, root, err := parseOnce(sf)
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}
	first := FormatRoot(b, root, opt)

	fs2 := source.NewFileSet()
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, first))
	b2, root2, err := parseOnce(rebuilt)
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}
	second := FormatRoot(b2, root2, opt)
	if !bytes.Equal(first, second) {
		return false, fmt.Sprintf("fmt-check: output not stable (%d vs %d bytes)", len(first), len(second))
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File) (*ast.Builder, ast.Root, error) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.ParseFile(lexer.New(sf, lexer.Options{}), b, parser.Options{})
	if err != nil {
		return nil, ast.Root{}, err
	}
	return b, res.Root, nil
}
