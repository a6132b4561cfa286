package target

// IntrinsicSig describes an environment instruction that backends lower
// opaquely: the VM executes it, the LLVM backend calls an external.
type IntrinsicSig struct {
	Args    int
	Results int
}

var intrinsics = map[string]IntrinsicSig{
	"addmod":       {3, 1},
	"mulmod":       {3, 1},
	"keccak256":    {2, 1},
	"msize":        {0, 1},
	"sload":        {1, 1},
	"sstore":       {2, 0},
	"caller":       {0, 1},
	"callvalue":    {0, 1},
	"calldataload": {1, 1},
	"calldatasize": {0, 1},
	"calldatacopy": {3, 0},
	"address":      {0, 1},
	"gas":          {0, 1},
	"timestamp":    {0, 1},
	"number":       {0, 1},
	"chainid":      {0, 1},
	"origin":       {0, 1},
	"gasprice":     {0, 1},
	"coinbase":     {0, 1},
	"gaslimit":     {0, 1},
	"selfbalance":  {0, 1},
	"balance":      {1, 1},
	"datacopy":     {3, 0},
}

// Intrinsic looks up an intrinsic signature by name.
func Intrinsic(name string) (IntrinsicSig, bool) {
	sig, ok := intrinsics[name]
	return sig, ok
}

// IntrinsicNames lists every intrinsic; order is unspecified.
func IntrinsicNames() []string {
	out := make([]string, 0, len(intrinsics))
	for name := range intrinsics {
		out = append(out, name)
	}
	return out
}
