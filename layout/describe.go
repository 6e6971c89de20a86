package layout

import (
	"reflect"
)

// Describe reports the Go layout of T in the same shape the Calculator uses
// for C records. Fields are keyed by their `layout` tag; blank and untagged
// fields are padding or directives and are left out.
func Describe[T any]() Info {
	t := reflect.TypeFor[T]()
	info := Info{
		Size:  uint32(t.Size()),
		Align: uint32(t.Align()),
	}
	if t.Kind() != reflect.Struct {
		return info
	}

	info.FieldOffs = make(map[string]uint32)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("layout")
		if !ok || f.Name == "_" {
			continue
		}
		info.FieldOffs[name] = uint32(f.Offset)
	}
	return info
}

// Matches reports whether the Go declaration T has the size and field offsets
// of the C record r. Alignment is not compared: on 32-bit Go targets int64
// aligns to 4, yet a buffer of T still matches the device byte for byte.
func Matches[T any](c *Calculator, r *Record) bool {
	goInfo := Describe[T]()
	cInfo := c.Calculate(r)
	if goInfo.Size != cInfo.Size {
		return false
	}
	if len(goInfo.FieldOffs) != len(cInfo.FieldOffs) {
		return false
	}
	for name, off := range cInfo.FieldOffs {
		if got, ok := goInfo.FieldOffs[name]; !ok || got != off {
			return false
		}
	}
	return true
}
