package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"yulc/internal/ast"
	"yulc/internal/source"
)

// ASTNodeOutput is one node of the AST dump; the pretty tree and the JSON
// form are rendered from the same structure.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// BuildASTOutput converts a parsed unit into a dump tree.
func BuildASTOutput(b *ast.Builder, root ast.Root) (ASTNodeOutput, error) {
	if b == nil {
		return ASTNodeOutput{}, fmt.Errorf("nil builder")
	}
	d := astDumper{b: b}
	if root.IsObject() {
		return d.object(root.Object), nil
	}
	if !root.Block.IsValid() {
		return ASTNodeOutput{}, fmt.Errorf("empty root")
	}
	return d.block("Block", root.Block), nil
}

// FormatASTPretty печатает дерево с псевдографикой.
func FormatASTPretty(w io.Writer, b *ast.Builder, root ast.Root) error {
	node, err := BuildASTOutput(b, root)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(nodeLabel(node))
	sb.WriteByte('\n')
	writeTreeChildren(&sb, node.Children, "")
	_, err = io.WriteString(w, sb.String())
	return err
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, root ast.Root) error {
	node, err := BuildASTOutput(b, root)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(node)
}

func nodeLabel(n ASTNodeOutput) string {
	if n.Text == "" {
		return fmt.Sprintf("%s (span: %d-%d)", n.Type, n.Span.Start, n.Span.End)
	}
	return fmt.Sprintf("%s %s (span: %d-%d)", n.Type, n.Text, n.Span.Start, n.Span.End)
}

func writeTreeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(nodeLabel(child))
		sb.WriteByte('\n')
		writeTreeChildren(sb, child.Children, prefix+next)
	}
}

type astDumper struct {
	b *ast.Builder
}

func (d astDumper) object(id ast.ObjectID) ASTNodeOutput {
	obj := d.b.Objects.Get(id)
	node := ASTNodeOutput{Type: "Object", Text: fmt.Sprintf("%q", obj.Name), Span: obj.Span}
	node.Children = append(node.Children, d.block("Code", obj.Code))
	for _, child := range obj.Children {
		node.Children = append(node.Children, d.object(child))
	}
	for _, data := range obj.Data {
		text := fmt.Sprintf("%q %q", data.Name, data.Value)
		if data.Hex {
			text = fmt.Sprintf("%q hex\"%x\"", data.Name, data.Value)
		}
		node.Children = append(node.Children, ASTNodeOutput{Type: "Data", Text: text, Span: data.NameSpan})
	}
	return node
}

func (d astDumper) block(label string, id ast.BlockID) ASTNodeOutput {
	blk := d.b.Blocks.Get(id)
	if blk == nil {
		return ASTNodeOutput{Type: label, Text: "<none>"}
	}
	node := ASTNodeOutput{Type: label, Span: blk.Span}
	for _, sid := range blk.Stmts {
		node.Children = append(node.Children, d.stmt(sid))
	}
	return node
}

func (d astDumper) typedNames(names []ast.TypedName) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := d.b.Name(n.Name)
		if n.Type != source.NoStringID {
			s += ":" + d.b.Name(n.Type)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (d astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	st := d.b.Stmts.Get(id)
	node := ASTNodeOutput{Type: strings.ToUpper(st.Kind.String()[:1]) + st.Kind.String()[1:], Span: st.Span}
	switch st.Kind {
	case ast.StmtBlock:
		if bid, ok := d.b.Stmts.Block(id); ok {
			node.Children = d.block("Block", bid).Children
		}
	case ast.StmtFunction:
		if fn, ok := d.b.Stmts.Function(id); ok {
			node.Text = fmt.Sprintf("%s(%s)", d.b.Name(fn.Name), d.typedNames(fn.Params))
			if len(fn.Results) > 0 {
				node.Text += " -> " + d.typedNames(fn.Results)
			}
			node.Children = d.block("Body", fn.Body).Children
		}
	case ast.StmtLet:
		if decl, ok := d.b.Stmts.Let(id); ok {
			node.Text = d.typedNames(decl.Names)
			if decl.Value.IsValid() {
				node.Children = append(node.Children, d.expr(decl.Value))
			}
		}
	case ast.StmtAssign:
		if as, ok := d.b.Stmts.Assign(id); ok {
			names := make([]string, 0, len(as.Targets))
			for _, t := range as.Targets {
				names = append(names, d.b.Name(t.Name))
			}
			node.Text = strings.Join(names, ", ")
			node.Children = append(node.Children, d.expr(as.Value))
		}
	case ast.StmtIf:
		if data, ok := d.b.Stmts.If(id); ok {
			node.Children = append(node.Children, d.expr(data.Cond), d.block("Then", data.Body))
		}
	case ast.StmtExpr:
		if data, ok := d.b.Stmts.Expr(id); ok {
			node.Children = append(node.Children, d.expr(data.Expr))
		}
	case ast.StmtSwitch:
		if sw, ok := d.b.Stmts.Switch(id); ok {
			node.Children = append(node.Children, d.expr(sw.Scrutinee))
			for _, c := range sw.Cases {
				cs := ASTNodeOutput{Type: "Case", Span: c.Span}
				cs.Children = append(cs.Children, d.expr(c.Value), d.block("Body", c.Body))
				node.Children = append(node.Children, cs)
			}
			if sw.Default.IsValid() {
				def := d.block("Default", sw.Default)
				def.Span = sw.DefaultSpan
				node.Children = append(node.Children, def)
			}
		}
	case ast.StmtFor:
		if data, ok := d.b.Stmts.For(id); ok {
			node.Children = append(node.Children,
				d.block("Init", data.Init),
				d.expr(data.Cond),
				d.block("Post", data.Post),
				d.block("Body", data.Body),
			)
		}
	}
	return node
}

func (d astDumper) expr(id ast.ExprID) ASTNodeOutput {
	e := d.b.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{Type: "Expr", Text: "<none>"}
	}
	node := ASTNodeOutput{Span: e.Span}
	switch e.Kind {
	case ast.ExprIdent:
		node.Type = "Ident"
		if data, ok := d.b.Exprs.Ident(id); ok {
			node.Text = d.b.Name(data.Name)
		}
	case ast.ExprLiteral:
		node.Type = "Literal"
		if data, ok := d.b.Exprs.Literal(id); ok {
			node.Text = data.Text
			if data.Type != source.NoStringID {
				node.Text += ":" + d.b.Name(data.Type)
			}
		}
	case ast.ExprCall:
		node.Type = "Call"
		if data, ok := d.b.Exprs.Call(id); ok {
			node.Text = d.b.Name(data.Callee)
			for _, arg := range data.Args {
				node.Children = append(node.Children, d.expr(arg))
			}
		}
	default:
		node.Type = "Invalid"
	}
	return node
}
