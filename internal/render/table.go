// Package render writes analysis results as tables and Graphviz DOT.
package render

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormats are the formats accepted by Table.
var TableFormats = []string{"table", "md", "csv", "tsv", "html", "simple"}

func IsTableFormat(format string) bool {
	return slices.Contains(TableFormats, format)
}

// Table renders t in the given format to t's output mirror.
func Table(t table.Writer, format string) error {
	switch format {
	case "table":
		t.Render()
	case "md":
		t.RenderMarkdown()
	case "csv":
		t.RenderCSV()
	case "tsv":
		t.RenderTSV()
	case "html":
		t.RenderHTML()
	case "simple":
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateHeader = false
		t.Style().Options.SeparateRows = false
		t.Style().Box.MiddleVertical = " "
		t.Render()
	default:
		return errors.Newf("unknown format: %s", format)
	}
	return nil
}
