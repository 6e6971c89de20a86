package kernels

// Kernel names as registered with the device.
const (
	SetStructName        = "setStruct"
	SetArrayOfStructName = "setArrayOfStruct"
	VerifyName           = "verify"
	ProbeLayoutName      = "probeLayout"
)

// Buffer is a pointer argument of a device kernel.
type Buffer struct {
	Name  string
	Type  string // C element type, e.g. elem_t
	Const bool
}

// Spec describes a device kernel. Kernels that take the grid scalars receive
// dimX, dimY, intStart and longStart ahead of their buffers. Bodies expect the
// preamble to typedef elem_t and nested_t and to define ARRAY_LEN.
type Spec struct {
	Name    string
	Scalars bool
	Buffers []Buffer
	Body    string
}

// SetStructSpec writes the buffer A element of every coordinate.
var SetStructSpec = Spec{
	Name:    SetStructName,
	Scalars: true,
	Buffers: []Buffer{{Name: "A", Type: "elem_t"}},
	Body: `
	for (int y = 0; y < dimY; ++y; @outer) {
		for (int x = 0; x < dimX; ++x; @inner) {
			const int n = y * dimX + x;
			A[n].i = intStart + n;
			A[n].l = longStart + n;
		}
	}
`,
}

// SetArrayOfStructSpec writes the buffer B element of every coordinate.
var SetArrayOfStructSpec = Spec{
	Name:    SetArrayOfStructName,
	Scalars: true,
	Buffers: []Buffer{{Name: "B", Type: "nested_t"}},
	Body: `
	for (int y = 0; y < dimY; ++y; @outer) {
		for (int x = 0; x < dimX; ++x; @inner) {
			const int n = y * dimX + x;
			for (int idx = 0; idx < ARRAY_LEN; ++idx) {
				B[n].arr[idx].i = intStart + n + idx;
				B[n].arr[idx].l = longStart + n + idx;
			}
		}
	}
`,
}

// VerifySpec sets failed[0] to 1 on any mismatch. Concurrent writers all
// store the same value.
var VerifySpec = Spec{
	Name:    VerifyName,
	Scalars: true,
	Buffers: []Buffer{
		{Name: "A", Type: "elem_t", Const: true},
		{Name: "B", Type: "nested_t", Const: true},
		{Name: "failed", Type: "int"},
	},
	Body: `
	for (int y = 0; y < dimY; ++y; @outer) {
		for (int x = 0; x < dimX; ++x; @inner) {
			const int n = y * dimX + x;
			if (A[n].i != intStart + n) failed[0] = 1;
			if (A[n].l != longStart + n) failed[0] = 1;
			for (int idx = 0; idx < ARRAY_LEN; ++idx) {
				if (B[n].arr[idx].i != intStart + n + idx) failed[0] = 1;
				if (B[n].arr[idx].l != longStart + n + idx) failed[0] = 1;
			}
		}
	}
`,
}

// ProbeLayoutSpec reports the device view of the records in out:
// sizeof(elem_t), sizeof(nested_t), the offset of i and the offset of l.
var ProbeLayoutSpec = Spec{
	Name:    ProbeLayoutName,
	Buffers: []Buffer{{Name: "out", Type: "long"}},
	Body: `
	for (int o = 0; o < 1; ++o; @outer) {
		for (int t = 0; t < 1; ++t; @inner) {
			elem_t probe;
			out[0] = sizeof(elem_t);
			out[1] = sizeof(nested_t);
			out[2] = (long)((char *)&probe.i - (char *)&probe);
			out[3] = (long)((char *)&probe.l - (char *)&probe);
		}
	}
`,
}

// Specs lists every device kernel.
var Specs = []Spec{SetStructSpec, SetArrayOfStructSpec, VerifySpec, ProbeLayoutSpec}
