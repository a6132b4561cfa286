package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/parser"
	"yulc/internal/source"
)

func bagWith(fs *source.FileSet, path, content string, code diag.Code, start, end uint32, msg string, notes ...diag.Note) *diag.Bag {
	id := fs.AddVirtual(path, []byte(content))
	bag := diag.NewBag(10)
	for i := range notes {
		notes[i].Span.File = id
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  source.Span{File: id, Start: start, End: end},
		Notes:    notes,
	})
	return bag
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	src := "{\n    let x := \"abc\n}\n"
	bag := bagWith(fs, "/home/user/proj/src/main.yul", src, diag.LexUnterminatedString, 15, 20, "unterminated string literal")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	want := "/home/user/proj/src/main.yul:2:14: ERROR LEX1002: unterminated string literal\n" +
		"  |\n" +
		"1 | {\n" +
		"2 |     let x := \"abc\n" +
		"  |              ^~~~\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestPrettyPathModes(t *testing.T) {
	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/proj/src/main.yul:1:1"},
		{"relative", PathModeRelative, "src/main.yul:1:1"},
		{"basename", PathModeBasename, "main.yul:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			bag := bagWith(fs, "/home/user/proj/src/main.yul", "}\n", diag.SynUnexpectedToken, 0, 1, "unexpected '}'")
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/proj"}); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.want+":") {
				t.Fatalf("output %q does not start with %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "漢" занимает две колонки терминала
	src := "\"漢\" $"
	bag := bagWith(fs, "w.yul", src, diag.LexUnknownChar, uint32(strings.Index(src, "$")), uint32(len(src)), "invalid character")
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	caret := lines[len(lines)-1]
	if caret != "  |      ^" {
		t.Fatalf("caret line = %q", caret)
	}
}

func TestPrettyNotesAndColor(t *testing.T) {
	fs := source.NewFileSet()
	src := "{ function f() {} function f() {} }"
	bag := bagWith(fs, "n.yul", src, diag.BldDuplicateFunction, 18, 33, "function f already defined",
		diag.Note{Span: source.Span{Start: 2, End: 17}, Msg: "previous definition"})

	var plain bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(plain.String(), "= note: n.yul:1:3: previous definition") {
		t.Fatalf("note missing:\n%s", plain.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("unexpected escape codes without color")
	}

	var colored bytes.Buffer
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes with color enabled")
	}
	if strings.Contains(colored.String(), "note:") {
		t.Fatalf("notes printed although ShowNotes is false")
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag := bagWith(fs, "j.yul", "{\n  break\n}\n", diag.GenBreakOutsideLoop, 4, 9, "break outside of a loop",
		diag.Note{Span: source.Span{Start: 0, End: 1}, Msg: "enclosing block"})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "GEN4003" || d.Stage != "codegen" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "j.yul" || d.Location.StartLine != 2 || d.Location.StartCol != 3 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "enclosing block" {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.yul", []byte("{}"))
	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Primary: source.Span{File: id}})
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.yul", []byte("{ // c\n  pop(1) }")))
	toks, err := lexer.Tokenize(file, lexer.Options{KeepTrivia: true})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`  1: '{'             "{" at 1:1-1:2`,
		`"pop" at 2:3-2:6 (leading: space, line_comment, newline, space)`,
		"end of file",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != len(toks) {
		t.Fatalf("decoded %d tokens, want %d", len(decoded), len(toks))
	}
}

func parseUnit(t *testing.T, src string) (*ast.Builder, ast.Root) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.yul", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.ParseFile(lexer.New(file, lexer.Options{}), b, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b, res.Root
}

func TestASTPretty(t *testing.T) {
	b, root := parseUnit(t, "{ function f(a:u8) -> r { r := add(a, 1) } let x := f(2) }")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, root); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Block (span:",
		"├─ Function f(a:u8) -> r",
		"│  └─ Assign r",
		"│     └─ Call add",
		"└─ Let x",
		"   └─ Call f",
		"      └─ Literal 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree lacks %q:\n%s", want, out)
		}
	}
}

func TestASTJSONObject(t *testing.T) {
	b, root := parseUnit(t, `object "A" { code { } data "d" hex"0102" }`)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, root); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var node ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if node.Type != "Object" || node.Text != `"A"` || len(node.Children) != 2 {
		t.Fatalf("unexpected root %+v", node)
	}
	if node.Children[0].Type != "Code" || node.Children[1].Type != "Data" {
		t.Fatalf("unexpected children %+v", node.Children)
	}
	if node.Children[1].Text != `"d" hex"0102"` {
		t.Fatalf("data text = %q", node.Children[1].Text)
	}
}
