package ast

import "yulc/internal/source"

// Object is `object "Name" { code { ... } (object ... | data ...)* }`.
type Object struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Code     BlockID
	Children []ObjectID
	Data     []DataSection
}

// DataSection is `data "Name" "..."` or `data "Name" hex"..."`.
type DataSection struct {
	Name     string
	NameSpan source.Span
	Value    []byte
	Hex      bool
}

type Objects struct {
	Arena *Arena[Object]
}

func NewObjects(capHint uint) *Objects {
	return &Objects{Arena: NewArena[Object](capHint)}
}

func (o *Objects) New(obj Object) ObjectID {
	return ObjectID(o.Arena.Allocate(obj))
}

func (o *Objects) Get(id ObjectID) *Object {
	return o.Arena.Get(uint32(id))
}
