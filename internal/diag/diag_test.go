package diag

import (
	"errors"
	"fmt"
	"testing"

	"yulc/internal/source"
)

func TestCodeStage(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		st   Stage
	}{
		{LexUnterminatedString, "LEX1002", StageLex},
		{SynUnexpectedToken, "SYN2001", StageSyntax},
		{BldDuplicateVariable, "BLD3001", StageBuilder},
		{GenCallArity, "GEN4001", StageCodeGen},
		{UnknownCode, "E0000", StageUnknown},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Stage(); got != tt.st {
			t.Errorf("%d.Stage() = %v, want %v", tt.code, got, tt.st)
		}
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	base := NewError(GenBreakOutsideLoop, source.Span{Start: 7, End: 12}, "break outside loop")
	wrapped := fmt.Errorf("compile unit: %w", base)

	var de *Error
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As failed on wrapped *Error")
	}
	if de.Stage() != StageCodeGen || de.Offset() != 7 {
		t.Errorf("stage/offset = %v/%d", de.Stage(), de.Offset())
	}
}

func TestEmitForwardsToBag(t *testing.T) {
	bag := NewBag(10)
	err := Emit(BagReporter{Bag: bag}, NewError(LexUnknownChar, source.Span{}, "bad char"))
	if err == nil || bag.Len() != 1 || !bag.HasErrors() {
		t.Fatalf("bag len=%d hasErrors=%v", bag.Len(), bag.HasErrors())
	}
}

func TestBagSortAndLimit(t *testing.T) {
	bag := NewBag(2)
	bag.Add(Diagnostic{Code: SynUnexpectedToken, Primary: source.Span{Start: 9}})
	bag.Add(Diagnostic{Code: LexBadNumber, Primary: source.Span{Start: 3}})
	if bag.Add(Diagnostic{}) {
		t.Fatal("limit not enforced")
	}
	bag.Sort()
	if bag.Items()[0].Code != LexBadNumber {
		t.Errorf("first after sort = %v", bag.Items()[0].Code)
	}
}
