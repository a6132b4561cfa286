package mir

import "yulc/internal/target"

type Func struct {
	ID      target.FuncID
	Name    string
	Params  int
	Results int

	Slots     []Slot  // index = SlotID-1
	Blocks    []Block // index = BlockID-1
	Entry     target.BlockID
	NumValues int
	Defined   bool
}

// Slot is function-local word storage for one variable.
type Slot struct {
	Name string
	Bits int
}

// Block returns the block with the given id.
func (f *Func) Block(id target.BlockID) *Block {
	if !id.IsValid() || int(id) > len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id-1]
}

type Block struct {
	ID     target.BlockID
	Label  string
	Instrs []Instr
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
