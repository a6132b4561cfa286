package format

import (
	"strings"

	"yulc/internal/ast"
	"yulc/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	b *ast.Builder
	w *Writer
}

// Source prints root with default options.
func Source(b *ast.Builder, root ast.Root) []byte {
	return FormatRoot(b, root, Options{})
}

// FormatRoot prints root in canonical form: one statement per line, blocks
// opened on the line of their owner, comments dropped.
func FormatRoot(b *ast.Builder, root ast.Root, opt Options) []byte {
	p := printer{b: b, w: NewWriter(opt)}
	if root.IsObject() {
		p.printObject(root.Object)
	} else {
		p.printBlock(root.Block)
	}
	p.w.Newline()
	return p.w.Bytes()
}

func (p *printer) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return p.b.Name(id)
}

func (p *printer) printObject(id ast.ObjectID) {
	obj := p.b.Objects.Get(id)
	p.w.WriteString("object ")
	p.w.WriteString(quote([]byte(obj.Name)))
	p.w.WriteString(" {")
	p.w.Newline()
	p.w.Indent()
	p.w.WriteString("code ")
	p.printBlock(obj.Code)
	p.w.Newline()
	for _, child := range obj.Children {
		p.printObject(child)
		p.w.Newline()
	}
	for _, d := range obj.Data {
		p.w.WriteString("data ")
		p.w.WriteString(quote([]byte(d.Name)))
		p.w.WriteString(" ")
		if d.Hex {
			p.w.WriteString(hexLiteral(d.Value))
		} else {
			p.w.WriteString(quote(d.Value))
		}
		p.w.Newline()
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

// printBlock prints '{' ... '}' without a trailing newline.
func (p *printer) printBlock(id ast.BlockID) {
	blk := p.b.Blocks.Get(id)
	if blk == nil || len(blk.Stmts) == 0 {
		p.w.WriteString("{ }")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.Indent()
	for _, st := range blk.Stmts {
		p.printStmt(st)
		p.w.Newline()
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

func (p *printer) typedNames(names []ast.TypedName) string {
	var sb strings.Builder
	for i, n := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.name(n.Name))
		if n.Type != source.NoStringID {
			sb.WriteByte(':')
			sb.WriteString(p.name(n.Type))
		}
	}
	return sb.String()
}
