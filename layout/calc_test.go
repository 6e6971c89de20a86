package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{0, 8, 0},
		{4, 8, 8},
		{8, 8, 8},
		{9, 4, 12},
		{3, 1, 3},
		{3, 0, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, AlignTo(tc.offset, tc.align), "AlignTo(%d, %d)", tc.offset, tc.align)
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	t.Run("empty", func(t *testing.T) {
		info := c.Calculate(&Record{Name: "empty"})
		assert.Equal(t, uint32(0), info.Size)
		assert.Equal(t, uint32(1), info.Align)
	})

	t.Run("int_then_long", func(t *testing.T) {
		info := c.Calculate(SmallStructFixture.Elem)
		assert.Equal(t, uint32(16), info.Size, "not 12: l is 8-byte aligned")
		assert.Equal(t, uint32(8), info.FieldOffs["l"])
		assert.Equal(t, uint32(4), c.Padding(SmallStructFixture.Elem))
	})

	t.Run("long_then_int", func(t *testing.T) {
		info := c.Calculate(SmallStruct2Fixture.Elem)
		assert.Equal(t, uint32(16), info.Size)
		assert.Equal(t, uint32(8), info.FieldOffs["i"])
		assert.Equal(t, uint32(4), c.Padding(SmallStruct2Fixture.Elem))
	})

	t.Run("int_only", func(t *testing.T) {
		r := &Record{Name: "ints", Fields: []Field{{"a", Int}, {"b", Int}, {"c", Int}}}
		info := c.Calculate(r)
		assert.Equal(t, uint32(12), info.Size)
		assert.Equal(t, uint32(4), info.Align)
		assert.Equal(t, uint32(0), c.Padding(r))
	})

	t.Run("array_of_records", func(t *testing.T) {
		info := c.Calculate(SmallStructFixture.Nested)
		assert.Equal(t, uint32(48), info.Size)
		assert.Equal(t, uint32(8), info.Align)
		// the filler lives inside each element, not between them
		assert.Equal(t, uint32(0), c.Padding(SmallStructFixture.Nested))
	})
}

func TestDeclare(t *testing.T) {
	want := "typedef struct small_struct {\n" +
		"    int i;\n" +
		"    long l;\n" +
		"} small_struct;\n"
	assert.Equal(t, want, Declare(SmallStructFixture.Elem))

	want = "typedef struct struct_of_struct_2 {\n" +
		"    small_struct_2 arr[3];\n" +
		"} struct_of_struct_2;\n"
	assert.Equal(t, want, Declare(SmallStruct2Fixture.Nested))
}
