package serverversion

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const absent = "(absent)"

// Render writes the metadata as a table of field, value and source.
func (md Metadata) Render(w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	// The renderer drops write errors, so the table is buffered and copied out.
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{
				PerColumn: []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft},
			},
		},
	}))
	table.Header("Field", "Value", "Source")
	if err := table.Append(FieldCommit, orAbsent(md.CommitHash), md.CommitSource); err != nil {
		return fmt.Errorf("failed to append %s row: %w", FieldCommit, err)
	}
	if err := table.Append(FieldVersion, orAbsent(md.Version), md.VersionSource); err != nil {
		return fmt.Errorf("failed to append %s row: %w", FieldVersion, err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render metadata table: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write metadata table: %w", err)
	}
	return nil
}

func orAbsent(s string) string {
	if s == "" {
		return absent
	}
	return s
}
