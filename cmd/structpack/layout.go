package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/structpack/layout"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the C and Go layouts of the fixture records; sizes and field offsets must agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := layout.NewCalculator()

			rows := []struct {
				record *layout.Record
				goInfo layout.Info
				match  bool
			}{
				{layout.SmallStructFixture.Elem, layout.Describe[layout.SmallStruct](),
					layout.Matches[layout.SmallStruct](c, layout.SmallStructFixture.Elem)},
				{layout.SmallStructFixture.Nested, layout.Describe[layout.StructOfStruct](),
					layout.Matches[layout.StructOfStruct](c, layout.SmallStructFixture.Nested)},
				{layout.SmallStruct2Fixture.Elem, layout.Describe[layout.SmallStruct2](),
					layout.Matches[layout.SmallStruct2](c, layout.SmallStruct2Fixture.Elem)},
				{layout.SmallStruct2Fixture.Nested, layout.Describe[layout.StructOfStruct2](),
					layout.Matches[layout.StructOfStruct2](c, layout.SmallStruct2Fixture.Nested)},
			}

			mismatched := 0
			for _, row := range rows {
				fmt.Fprint(out, layout.Declare(row.record))
				printInfo(out, "C ", c.Calculate(row.record))
				printInfo(out, "Go", row.goInfo)
				fmt.Fprintf(out, "  padding %d bytes, match %v\n\n", c.Padding(row.record), row.match)
				if !row.match {
					mismatched++
				}
			}
			if mismatched > 0 {
				return fmt.Errorf("%d records differ between C and Go", mismatched)
			}
			return nil
		},
	}
}

func printInfo(w io.Writer, label string, info layout.Info) {
	names := make([]string, 0, len(info.FieldOffs))
	for name := range info.FieldOffs {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "  %s size=%d align=%d", label, info.Size, info.Align)
	for _, name := range names {
		fmt.Fprintf(w, " %s@%d", name, info.FieldOffs[name])
	}
	fmt.Fprintln(w)
}
