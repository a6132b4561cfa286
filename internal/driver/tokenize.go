package driver

import (
	"context"
	"fmt"

	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/source"
	"yulc/internal/token"
	"yulc/internal/trace"
)

// TokenizeResult содержит результат токенизации одного файла
type TokenizeResult struct {
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize loads path and returns its token stream, trivia included when
// keepTrivia is set. Tokens read before a lexical error are returned too.
func Tokenize(ctx context.Context, fs *source.FileSet, path string, keepTrivia bool) (*TokenizeResult, error) {
	_, span := trace.BeginCtx(ctx, trace.ScopePass, PhaseLex)
	defer span.End("")

	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := &TokenizeResult{FileID: id, Bag: diag.NewBag(1)}
	res.Tokens, err = lexer.Tokenize(fs.Get(id), lexer.Options{
		Reporter:   diag.BagReporter{Bag: res.Bag},
		KeepTrivia: keepTrivia,
	})
	return res, err
}
