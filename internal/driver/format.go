package driver

import (
	"bytes"
	"context"

	"yulc/internal/format"
	"yulc/internal/source"
)

// FormatResult is the canonical form of one file.
type FormatResult struct {
	*Result
	Original  []byte
	Formatted []byte
}

// Changed reports whether formatting altered the file.
func (r *FormatResult) Changed() bool {
	return !bytes.Equal(r.Original, r.Formatted)
}

// FormatFile parses path and prints it canonically. Comments are dropped by
// the printer, so callers should warn before overwriting commented files.
func FormatFile(ctx context.Context, fs *source.FileSet, path string, opts format.Options) (*FormatResult, error) {
	res, err := Compile(ctx, fs, path, Options{StopAfter: PhaseParse})
	if err != nil {
		return &FormatResult{Result: res}, err
	}
	return &FormatResult{
		Result:    res,
		Original:  fs.Get(res.FileID).Content,
		Formatted: format.FormatRoot(res.Builder, res.Root, opts),
	}, nil
}
