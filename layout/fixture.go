package layout

// Fixture names the pair of records a test populates and verifies: Elem is
// stored in buffer A and Nested in buffer B.
type Fixture struct {
	Name   string
	Elem   *Record
	Nested *Record
}

var smallStructRecord = &Record{
	Name: "small_struct",
	Fields: []Field{
		{Name: "i", Type: Int},
		{Name: "l", Type: Long},
	},
}

var smallStruct2Record = &Record{
	Name: "small_struct_2",
	Fields: []Field{
		{Name: "l", Type: Long},
		{Name: "i", Type: Int},
	},
}

// SmallStructFixture has its padding between i and l.
var SmallStructFixture = Fixture{
	Name: "small_struct",
	Elem: smallStructRecord,
	Nested: &Record{
		Name:   "struct_of_struct",
		Fields: []Field{{Name: "arr", Type: Array{Elem: smallStructRecord, Len: ArrayLen}}},
	},
}

// SmallStruct2Fixture has its padding after i, at the end of the record.
var SmallStruct2Fixture = Fixture{
	Name: "small_struct_2",
	Elem: smallStruct2Record,
	Nested: &Record{
		Name:   "struct_of_struct_2",
		Fields: []Field{{Name: "arr", Type: Array{Elem: smallStruct2Record, Len: ArrayLen}}},
	},
}
