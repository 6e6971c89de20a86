package builder

import (
	"fmt"
	"strings"

	"github.com/notargets/structpack/layout"
)

// AlignmentType specifies memory alignment requirements
type AlignmentType int

const (
	NoAlignment    AlignmentType = 1
	CacheLineAlign AlignmentType = 64
)

// ArraySpec defines user requirements for array allocation
type ArraySpec struct {
	Name        string
	Count       int   // number of elements
	ElementSize int64 // bytes per element, padding included
	Alignment   AlignmentType
}

// Builder generates the kernel preamble and sizes device buffers for one
// fixture over one grid
type Builder struct {
	Grid    layout.Config
	Fixture layout.Fixture

	calc *layout.Calculator

	// Array tracking
	AllocatedArrays []string

	// Generated code
	KernelPreamble string
}

// NewBuilder creates a new Builder instance
func NewBuilder(grid layout.Config, fixture layout.Fixture) *Builder {
	if err := grid.Validate(); err != nil {
		panic(err.Error())
	}
	if fixture.Elem == nil || fixture.Nested == nil {
		panic(fmt.Sprintf("fixture %q has no records", fixture.Name))
	}

	return &Builder{
		Grid:            grid,
		Fixture:         fixture,
		calc:            layout.NewCalculator(),
		AllocatedArrays: []string{},
	}
}

// ElemSize is the device size of one buffer A element
func (kb *Builder) ElemSize() int64 {
	return int64(kb.calc.Calculate(kb.Fixture.Elem).Size)
}

// NestedSize is the device size of one buffer B element
func (kb *Builder) NestedSize() int64 {
	return int64(kb.calc.Calculate(kb.Fixture.Nested).Size)
}

// BufferSpecs returns the allocation specs of the A and B buffers, each
// padded out to a whole cache line
func (kb *Builder) BufferSpecs() []ArraySpec {
	return []ArraySpec{
		{Name: "A", Count: kb.Grid.Len(), ElementSize: kb.ElemSize(), Alignment: CacheLineAlign},
		{Name: "B", Count: kb.Grid.Len(), ElementSize: kb.NestedSize(), Alignment: CacheLineAlign},
	}
}

// CalculateAlignedSize returns the allocation size of spec in bytes, rounded
// up to its alignment
func (kb *Builder) CalculateAlignedSize(spec ArraySpec) int64 {
	alignment := int64(spec.Alignment)
	if alignment == 0 {
		alignment = int64(NoAlignment)
	}
	size := int64(spec.Count) * spec.ElementSize
	if size%alignment != 0 {
		size = ((size + alignment - 1) / alignment) * alignment
	}
	return size
}

// GeneratePreamble generates the record typedefs, the elem_t and nested_t
// aliases the kernels are written against, and ARRAY_LEN
func (kb *Builder) GeneratePreamble() string {
	var sb strings.Builder

	// 1. Record declarations, leaf first
	sb.WriteString(kb.generateTypeDefinitions())

	// 2. Constants
	sb.WriteString(kb.generateConstants())

	kb.KernelPreamble = sb.String()
	return kb.KernelPreamble
}

func (kb *Builder) generateTypeDefinitions() string {
	var sb strings.Builder

	sb.WriteString(layout.Declare(kb.Fixture.Elem))
	sb.WriteString("\n")
	sb.WriteString(layout.Declare(kb.Fixture.Nested))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("typedef %s elem_t;\n", kb.Fixture.Elem.Name))
	sb.WriteString(fmt.Sprintf("typedef %s nested_t;\n", kb.Fixture.Nested.Name))
	sb.WriteString("\n")

	return sb.String()
}

func (kb *Builder) generateConstants() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("#define ARRAY_LEN %d\n", layout.ArrayLen))
	sb.WriteString("\n")

	return sb.String()
}
