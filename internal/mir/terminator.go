package mir

import "yulc/internal/target"

type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermIf
	TermReturn
	TermAbort
)

type Terminator struct {
	Kind TermKind

	Goto   GotoTerm
	If     IfTerm
	Return ReturnTerm
	Abort  AbortTerm
}

type GotoTerm struct {
	Target target.BlockID
}

// IfTerm branches to Then when Cond is non-zero.
type IfTerm struct {
	Cond target.ValueID
	Then target.BlockID
	Else target.BlockID
}

type ReturnTerm struct {
	Values []target.ValueID
}

// AbortTerm ends the whole program; Off and Size are set for revert/return.
type AbortTerm struct {
	Kind target.AbortKind
	Off  target.ValueID
	Size target.ValueID
}

// Successors lists the blocks control may reach from t.
func (t *Terminator) Successors() []target.BlockID {
	switch t.Kind {
	case TermGoto:
		return []target.BlockID{t.Goto.Target}
	case TermIf:
		return []target.BlockID{t.If.Then, t.If.Else}
	default:
		return nil
	}
}
