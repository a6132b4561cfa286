package vm

import (
	"golang.org/x/crypto/sha3"

	"yulc/internal/bignum"
)

func (vm *VM) intrinsic(name string, args []bignum.Word) ([]bignum.Word, error) {
	env := &vm.opts.Env
	one := func(w bignum.Word) ([]bignum.Word, error) { return []bignum.Word{w}, nil }

	switch name {
	case "addmod":
		return one(bignum.AddMod(args[0], args[1], args[2]))
	case "mulmod":
		return one(bignum.MulMod(args[0], args[1], args[2]))
	case "keccak256":
		data, err := vm.Memory.Read(args[0], args[1])
		if err != nil {
			return nil, vm.fault(FaultMemoryLimit, "%v", err)
		}
		return one(Keccak256(data))
	case "msize":
		return one(bignum.FromUint64(vm.Memory.Size()))
	case "sload":
		return one(vm.Storage[args[0]])
	case "sstore":
		if args[1].IsZero() {
			delete(vm.Storage, args[0])
		} else {
			vm.Storage[args[0]] = args[1]
		}
		return nil, nil
	case "caller":
		return one(env.Caller)
	case "callvalue":
		return one(env.CallValue)
	case "origin":
		return one(env.Origin)
	case "address":
		return one(env.Address)
	case "coinbase":
		return one(env.Coinbase)
	case "calldatasize":
		return one(bignum.FromUint64(uint64(len(env.Calldata))))
	case "calldataload":
		return one(bignum.FromBytes(slicePadded(env.Calldata, args[0], 32)))
	case "calldatacopy":
		return nil, vm.copyIn(env.Calldata, args)
	case "datacopy":
		return nil, vm.copyIn(vm.M.Data, args)
	case "gas":
		left := uint64(0)
		if vm.Steps < env.GasLimit {
			left = env.GasLimit - vm.Steps
		}
		return one(bignum.FromUint64(left))
	case "gaslimit":
		return one(bignum.FromUint64(env.GasLimit))
	case "timestamp":
		return one(bignum.FromUint64(env.Timestamp))
	case "number":
		return one(bignum.FromUint64(env.Number))
	case "chainid":
		return one(bignum.FromUint64(env.ChainID))
	case "gasprice":
		return one(bignum.FromUint64(env.GasPrice))
	case "selfbalance":
		return one(env.Balances[env.Address])
	case "balance":
		return one(env.Balances[args[0]])
	default:
		return nil, vm.fault(FaultUnsupported, "intrinsic %q is not supported", name)
	}
}

// copyIn implements (dst, src, size) copies from a read-only byte source;
// reads past the end yield zeros.
func (vm *VM) copyIn(src []byte, args []bignum.Word) error {
	n, ok := args[2].Uint64()
	if !ok || n > vm.opts.MaxMemory {
		return vm.fault(FaultMemoryLimit, "copy of %s bytes beyond limit", args[2].Hex())
	}
	if err := vm.Memory.Write(args[0], args[2], slicePadded(src, args[1], n)); err != nil {
		return vm.fault(FaultMemoryLimit, "%v", err)
	}
	return nil
}

// slicePadded returns src[off:off+n] zero-padded to n bytes.
func slicePadded(src []byte, off bignum.Word, n uint64) []byte {
	out := make([]byte, n)
	o, ok := off.Uint64()
	if !ok || o >= uint64(len(src)) {
		return out
	}
	copy(out, src[o:])
	return out
}

// Keccak256 hashes data with the legacy (pre-NIST) padding.
func Keccak256(data []byte) bignum.Word {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return bignum.FromBytes(h.Sum(nil))
}
