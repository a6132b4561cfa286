package target

import "yulc/internal/bignum"

// Builder emits one target module. Instructions append to the block under the
// cursor; exactly one function is open between BeginFunc and EndFunc.
type Builder interface {
	// DeclareFunc registers a function before any body is emitted so calls may
	// precede definitions.
	DeclareFunc(name string, params, results int) FuncID
	// BeginFunc opens fn, creates its entry block and moves the cursor there.
	BeginFunc(fn FuncID) BlockID
	Param(i int) ValueID
	// EndFunc closes the open function and checks that every block is terminated.
	EndFunc() error

	NewBlock(label string) BlockID
	SetCursor(b BlockID)
	Cursor() BlockID
	// Terminated reports whether the block under the cursor already ends in a
	// branch, return or abort.
	Terminated() bool

	// NewSlot allocates function-local storage. bits records the declared
	// width of the variable (256 unless annotated).
	NewSlot(name string, bits int) SlotID
	Load(s SlotID) ValueID
	Store(s SlotID, v ValueID)

	Const(w bignum.Word) ValueID
	Binary(op BinOp, a, b ValueID) ValueID
	Unary(op UnOp, a ValueID) ValueID
	MemLoad(addr ValueID) ValueID
	MemStore(addr, v ValueID, width Width)
	Intrinsic(name string, args []ValueID) []ValueID

	CondBranch(cond ValueID, then, els BlockID)
	Branch(to BlockID)
	Call(fn FuncID, args []ValueID) []ValueID
	Return(vals []ValueID)
	Abort(kind AbortKind, off, size ValueID)

	// SetData attaches the read-only data blob addressed by datacopy.
	SetData(blob []byte)
}

// Factory creates a Builder for a module with the given name.
type Factory func(module string) Builder
