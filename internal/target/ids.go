package target

type (
	ValueID uint32
	BlockID uint32
	FuncID  uint32
	SlotID  uint32
)

const (
	NoValue ValueID = 0
	NoBlock BlockID = 0
	NoFunc  FuncID  = 0
	NoSlot  SlotID  = 0
)

func (id ValueID) IsValid() bool { return id != NoValue }
func (id BlockID) IsValid() bool { return id != NoBlock }
func (id FuncID) IsValid() bool  { return id != NoFunc }
func (id SlotID) IsValid() bool  { return id != NoSlot }
