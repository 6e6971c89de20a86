package layout

import (
	"structs"
	"unsafe"
)

// ArrayLen is the number of SmallStruct values nested in a StructOfStruct.
const ArrayLen = 3

// SmallStruct mirrors the C record
//
//	typedef struct small_struct {
//	    int i;
//	    // 4 bytes of padding
//	    long l;
//	} small_struct;
//
// The padding is spelled out so the layout does not depend on the alignment
// rules of the target the Go code happens to be compiled for.
type SmallStruct struct {
	_ structs.HostLayout
	I int32 `layout:"i"`
	_ [4]byte
	L int64 `layout:"l"`
}

// StructOfStruct mirrors struct_of_struct: a fixed array of SmallStruct.
type StructOfStruct struct {
	_   structs.HostLayout
	Arr [ArrayLen]SmallStruct `layout:"arr"`
}

// SmallStruct2 mirrors small_struct_2, where the padding trails the 32-bit field.
type SmallStruct2 struct {
	_ structs.HostLayout
	L int64 `layout:"l"`
	I int32 `layout:"i"`
	_ [4]byte
}

// StructOfStruct2 mirrors struct_of_struct_2.
type StructOfStruct2 struct {
	_   structs.HostLayout
	Arr [ArrayLen]SmallStruct2 `layout:"arr"`
}

// Small is implemented by the leaf records stored in buffer A.
type Small interface {
	comparable
	Int() int32
	Long() int64
}

// Nested is implemented by the records stored in buffer B.
type Nested[S Small] interface {
	Elem(idx int) S
}

func (s SmallStruct) Int() int32  { return s.I }
func (s SmallStruct) Long() int64 { return s.L }

func (s SmallStruct2) Int() int32  { return s.I }
func (s SmallStruct2) Long() int64 { return s.L }

func (s StructOfStruct) Elem(idx int) SmallStruct   { return s.Arr[idx] }
func (s StructOfStruct2) Elem(idx int) SmallStruct2 { return s.Arr[idx] }

// Bytes returns the raw memory of a buffer, padding included. The result
// aliases buf and is what gets copied across the host-device boundary.
func Bytes[T any](buf []T) []byte {
	if len(buf) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*int(unsafe.Sizeof(zero)))
}

// SizeOf returns the in-memory size of one T.
func SizeOf[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}
