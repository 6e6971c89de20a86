package layout

import (
	"fmt"
	"strings"
)

// Type is a C type as declared in the kernel preamble.
type Type interface {
	CName() string
}

// Scalar is a fixed-width C integer type whose alignment equals its size.
type Scalar struct {
	Name string
	Size uint32
}

func (s Scalar) CName() string { return s.Name }

var (
	Int  = Scalar{Name: "int", Size: 4}
	Long = Scalar{Name: "long", Size: 8}
)

// Array is a fixed-length C array field.
type Array struct {
	Elem Type
	Len  int
}

func (a Array) CName() string { return a.Elem.CName() }

// Field is one member of a Record.
type Field struct {
	Name string
	Type Type
}

// Record is a C struct declared with a typedef of the same name.
type Record struct {
	Name   string
	Fields []Field
}

func (r *Record) CName() string { return r.Name }

// Info holds the size, alignment and field offsets of a type.
type Info struct {
	Size      uint32
	Align     uint32
	FieldOffs map[string]uint32
}

// AlignTo rounds offset up to a multiple of align.
func AlignTo(offset, align uint32) uint32 {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) / align * align
}

// Calculator computes natural-alignment layouts, the rules every OCCA backend
// applies to the preamble typedefs.
type Calculator struct {
	cache map[*Record]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*Record]Info),
	}
}

func (c *Calculator) Calculate(t Type) Info {
	switch typ := t.(type) {
	case Scalar:
		return Info{Size: typ.Size, Align: typ.Size}
	case Array:
		elem := c.Calculate(typ.Elem)
		return Info{Size: elem.Size * uint32(typ.Len), Align: elem.Align}
	case *Record:
		return c.calculateRecord(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateRecord(r *Record) Info {
	if cached, ok := c.cache[r]; ok {
		return cached
	}
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}
	}

	fieldOffs := make(map[string]uint32, len(r.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		fieldLayout := c.Calculate(field.Type)

		offset = AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		offset += fieldLayout.Size
	}

	info := Info{
		Size:      AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}
	c.cache[r] = info
	return info
}

// Padding returns the number of filler bytes the record carries.
func (c *Calculator) Padding(r *Record) uint32 {
	used := uint32(0)
	for _, field := range r.Fields {
		used += c.Calculate(field.Type).Size
	}
	return c.Calculate(r).Size - used
}

// Declare renders the typedef for r. Nested records must be declared first.
func Declare(r *Record) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("typedef struct %s {\n", r.Name))
	for _, f := range r.Fields {
		if arr, ok := f.Type.(Array); ok {
			sb.WriteString(fmt.Sprintf("    %s %s[%d];\n", arr.CName(), f.Name, arr.Len))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s %s;\n", f.Type.CName(), f.Name))
	}
	sb.WriteString(fmt.Sprintf("} %s;\n", r.Name))
	return sb.String()
}
