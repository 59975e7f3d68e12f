package render

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	for _, format := range TableFormats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			w := table.NewWriter()
			w.SetOutputMirror(&buf)
			w.AppendHeader(table.Row{"group", "size"})
			w.AppendRow(table.Row{1, 3})

			assert.NoError(t, Table(w, format))
			assert.Contains(t, buf.String(), "3")
			assert.True(t, IsTableFormat(format))
		})
	}
}

func TestTable_csv(t *testing.T) {
	var buf bytes.Buffer
	w := table.NewWriter()
	w.SetOutputMirror(&buf)
	w.AppendHeader(table.Row{"group", "size"})
	w.AppendRow(table.Row{1, 3})

	assert.NoError(t, Table(w, "csv"))
	assert.Contains(t, buf.String(), "\n1,3")
}

func TestTable_unknownFormat(t *testing.T) {
	w := table.NewWriter()
	assert.EqualError(t, Table(w, "yaml"), "unknown format: yaml")
	assert.False(t, IsTableFormat("yaml"))
}
