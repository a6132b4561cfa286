package mir

import "yulc/internal/target"

type Module struct {
	Name  string
	Funcs []*Func // index = FuncID-1
	Data  []byte
}

// Func returns the function with the given id.
func (m *Module) Func(id target.FuncID) *Func {
	if !id.IsValid() || int(id) > len(m.Funcs) {
		return nil
	}
	return m.Funcs[id-1]
}

// Lookup finds a function by name.
func (m *Module) Lookup(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
