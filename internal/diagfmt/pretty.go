package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"yulc/internal/diag"
	"yulc/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code            *color.Color
	path            *color.Color
	gutter          *color.Color
	caret           *color.Color
	note            *color.Color
	msg             *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.FgMagenta),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		msg:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note, p.msg} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		if err := writeDiagnostic(w, &items[i], fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

// PrettyError renders a single stage error.
func PrettyError(w io.Writer, err *diag.Error, fs *source.FileSet, opts PrettyOpts) error {
	if err == nil {
		return nil
	}
	bag := diag.NewBag(1)
	bag.Add(err.Diagnostic)
	return Pretty(w, bag, fs, opts)
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	f := fileOf(fs, d.Primary)
	var pos source.LineCol
	if f != nil {
		pos = f.LineCol(d.Primary.Start)
	}
	_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(location(f, pos, opts)),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		p.msg.Sprint(d.Message),
	)
	if err != nil {
		return err
	}
	if f != nil {
		if err := writeSnippet(w, f, d.Primary, opts.Context, p); err != nil {
			return err
		}
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		nf := fileOf(fs, n.Span)
		var npos source.LineCol
		if nf != nil {
			npos = nf.LineCol(n.Span.Start)
		}
		if _, err := fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("= note:"), location(nf, npos, opts), n.Msg); err != nil {
			return err
		}
	}
	return nil
}

func location(f *source.File, pos source.LineCol, opts PrettyOpts) string {
	if f == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
}

func writeSnippet(w io.Writer, f *source.File, span source.Span, context uint8, p palette) error {
	start := f.LineCol(span.Start)
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	pad := strings.Repeat(" ", width)

	if _, err := fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|")); err != nil {
		return err
	}
	for n := first; n <= start.Line; n++ {
		line := f.Line(n)
		if _, err := fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), line); err != nil {
			return err
		}
	}
	line := f.Line(start.Line)
	col := int(start.Col - 1)
	col = min(col, len(line))
	// спан может уходить за конец строки, подчёркиваем до конца
	end := col + int(span.Len())
	end = max(min(end, len(line)), col)
	marker := "^" + strings.Repeat("~", max(displayWidth(line[col:end])-1, 0))
	_, err := fmt.Fprintf(w, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), caretPadding(line[:col]), p.caret.Sprint(marker))
	return err
}

// caretPadding повторяет табы как есть, остальное заменяет пробелами по ширине символа.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for len(prefix) > 0 {
		r, size := utf8.DecodeRuneInString(prefix)
		prefix = prefix[size:]
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func displayWidth(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", " "))
}
