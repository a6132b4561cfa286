package mir

import (
	"fmt"
	"io"
	"strings"

	"yulc/internal/target"
)

// DumpModule writes a human-readable representation of m.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "module %q funcs=%d\n", m.Name, len(m.Funcs)); err != nil {
		return err
	}
	if len(m.Data) > 0 {
		if _, err := fmt.Fprintf(w, "data %d bytes: %x\n", len(m.Data), m.Data); err != nil {
			return err
		}
	}
	for _, f := range m.Funcs {
		if err := dumpFunc(w, m, f); err != nil {
			return err
		}
	}
	return nil
}

// String returns the dump of m.
func (m *Module) String() string {
	var sb strings.Builder
	if err := DumpModule(&sb, m); err != nil {
		return "<dump error: " + err.Error() + ">"
	}
	return sb.String()
}

func dumpFunc(w io.Writer, m *Module, f *Func) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nfn %s(params=%d) -> %d", f.Name, f.Params, f.Results)
	if !f.Defined {
		sb.WriteString(" <declared>\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}
	sb.WriteString(":\n")
	if len(f.Slots) > 0 {
		sb.WriteString("  slots:\n")
		for i, s := range f.Slots {
			fmt.Fprintf(&sb, "    $%d: u%d name=%s\n", i+1, s.Bits, s.Name)
		}
	}
	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(&sb, "  bb%d (%s):\n", bb.ID, bb.Label)
		for j := range bb.Instrs {
			fmt.Fprintf(&sb, "    %s\n", formatInstr(m, &bb.Instrs[j]))
		}
		fmt.Fprintf(&sb, "    %s\n", formatTerm(&bb.Term))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatValues(vals []target.ValueID) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%%%d", v)
	}
	return strings.Join(parts, ", ")
}

// FormatInstr renders ins the way DumpModule prints it.
func (m *Module) FormatInstr(ins *Instr) string { return formatInstr(m, ins) }

func formatInstr(m *Module, ins *Instr) string {
	dst := ""
	if len(ins.Dst) > 0 {
		dst = formatValues(ins.Dst) + " = "
	}
	switch ins.Kind {
	case InstrConst:
		return fmt.Sprintf("%sconst %s", dst, ins.Const.Hex())
	case InstrParam:
		return fmt.Sprintf("%sparam %d", dst, ins.Param)
	case InstrBinary:
		return fmt.Sprintf("%s%s %s", dst, ins.Bin, formatValues(ins.Args))
	case InstrUnary:
		return fmt.Sprintf("%s%s %s", dst, ins.Un, formatValues(ins.Args))
	case InstrLoad:
		return fmt.Sprintf("%sload $%d", dst, ins.Slot)
	case InstrStore:
		return fmt.Sprintf("store $%d, %s", ins.Slot, formatValues(ins.Args))
	case InstrMemLoad:
		return fmt.Sprintf("%smload %s", dst, formatValues(ins.Args))
	case InstrMemStore:
		op := "mstore"
		if ins.Width == target.Width8 {
			op = "mstore8"
		}
		return fmt.Sprintf("%s %s", op, formatValues(ins.Args))
	case InstrIntrinsic:
		return fmt.Sprintf("%s%s(%s)", dst, ins.Name, formatValues(ins.Args))
	case InstrCall:
		name := fmt.Sprintf("fn#%d", ins.Callee)
		if f := m.Func(ins.Callee); f != nil {
			name = f.Name
		}
		return fmt.Sprintf("%scall @%s(%s)", dst, name, formatValues(ins.Args))
	default:
		return "<instr?>"
	}
}

func formatTerm(t *Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %%%d then bb%d else bb%d", t.If.Cond, t.If.Then, t.If.Else)
	case TermReturn:
		if len(t.Return.Values) == 0 {
			return "return"
		}
		return "return " + formatValues(t.Return.Values)
	case TermAbort:
		if t.Abort.Kind.HasData() {
			return fmt.Sprintf("%s %%%d, %%%d", t.Abort.Kind, t.Abort.Off, t.Abort.Size)
		}
		return t.Abort.Kind.String()
	default:
		return "<unterminated>"
	}
}
