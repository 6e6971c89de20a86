// Package kernels holds the per-coordinate generator kernels that populate the
// A and B buffers, both as pure Go functions and as OKL source for a device.
package kernels

import (
	"github.com/notargets/structpack/layout"
)

// SetStruct produces the buffer A element for (x, y).
func SetStruct(cfg layout.Config, x, y int) layout.SmallStruct {
	return layout.SmallStruct{
		I: cfg.ExpectedInt(x, y, 0),
		L: cfg.ExpectedLong(x, y, 0),
	}
}

// SetArrayOfStruct produces the buffer B element for (x, y).
func SetArrayOfStruct(cfg layout.Config, x, y int) layout.StructOfStruct {
	var out layout.StructOfStruct
	for idx := 0; idx < layout.ArrayLen; idx++ {
		out.Arr[idx].I = cfg.ExpectedInt(x, y, idx)
		out.Arr[idx].L = cfg.ExpectedLong(x, y, idx)
	}
	return out
}

// SetStruct2 is SetStruct for the trailing padding layout.
func SetStruct2(cfg layout.Config, x, y int) layout.SmallStruct2 {
	return layout.SmallStruct2{
		L: cfg.ExpectedLong(x, y, 0),
		I: cfg.ExpectedInt(x, y, 0),
	}
}

// SetArrayOfStruct2 is SetArrayOfStruct for the trailing padding layout.
func SetArrayOfStruct2(cfg layout.Config, x, y int) layout.StructOfStruct2 {
	var out layout.StructOfStruct2
	for idx := 0; idx < layout.ArrayLen; idx++ {
		out.Arr[idx].L = cfg.ExpectedLong(x, y, idx)
		out.Arr[idx].I = cfg.ExpectedInt(x, y, idx)
	}
	return out
}
