package source

import "testing"

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("unit.yul", []byte("{ }"), 0)
	id2 := fs.Add("./unit.yul", []byte("{ let x := 1 }"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("unit.yul")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "{ }" {
		t.Errorf("old version content = %q", got)
	}
}

func TestGetLatestFoldsUnicodeSpelling(t *testing.T) {
	fs := NewFileSet()
	decomposed := "cafe\u0301.yul"
	id := fs.AddVirtual(decomposed, []byte("{}"))
	got, ok := fs.GetLatest("caf\u00e9.yul")
	if !ok || got != id {
		t.Fatalf("GetLatest(precomposed) = %d,%v; want %d,true", got, ok, id)
	}
	if p := fs.Get(id).Path; p != decomposed {
		t.Fatalf("Path = %q, want the name as given", p)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	content, hadBOM := removeBOM([]byte("\xEF\xBB\xBF{\r\n}"))
	if !hadBOM {
		t.Fatal("BOM not detected")
	}
	content, hadCRLF := normalizeCRLF(content)
	if !hadCRLF || string(content) != "{\n}" {
		t.Fatalf("normalizeCRLF = %q,%v", content, hadCRLF)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.yul", []byte("{\n  let x := 1\n}\n"))
	f := fs.Get(id)
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}}, // the newline itself belongs to line 1
		{2, LineCol{2, 1}},
		{4, LineCol{2, 3}},
		{15, LineCol{3, 1}},
	}
	for _, tt := range tests {
		if got := f.LineCol(tt.off); got != tt.want {
			t.Errorf("LineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if got := f.Line(2); got != "  let x := 1" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := f.Line(9); got != "" {
		t.Errorf("Line(9) = %q, want empty", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("cross-file Cover changed span: %v", got)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	if b := in.Intern("foo"); a != b {
		t.Fatalf("same string interned twice: %d vs %d", a, b)
	}
	if s := in.MustLookup(a); s != "foo" {
		t.Errorf("MustLookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("Lookup of unknown id succeeded")
	}
}
