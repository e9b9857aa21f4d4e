package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/phyten/emptymon/internal/model"
	"github.com/phyten/emptymon/internal/termcolor"
	"github.com/phyten/emptymon/internal/textutil"
)

const columnGap = "  "

// TableStyle controls ANSI colouring of the table writer. The zero value
// renders plain text.
type TableStyle struct {
	Enabled bool
	Scheme  termcolor.Scheme
	Profile termcolor.Profile
}

// WriteTable renders findings as an aligned table. Column widths are measured
// in terminal cells, so wide characters in paths line up.
func WriteTable(w io.Writer, findings []model.Finding, sel FieldSelection, style TableStyle) error {
	headers := Headers(sel.Fields)
	rows := make([][]string, len(findings))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for r, f := range findings {
		row := RowValues(f, sel.Fields)
		for i := range row {
			row[i] = flattenCell(row[i])
			if cw := textutil.VisibleWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
		rows[r] = row
	}

	bw := bufio.NewWriter(w)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = termcolor.Apply(termcolor.HeaderStyle(), h, style.Enabled)
	}
	writeRow(bw, cells, widths, sel.Fields)
	for r, row := range rows {
		for i, v := range row {
			cells[i] = termcolor.Apply(cellStyle(sel.Fields[i].Key, findings[r], style), v, style.Enabled)
		}
		writeRow(bw, cells, widths, sel.Fields)
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, cells []string, widths []int, fields []Field) {
	for i, cell := range cells {
		last := i == len(cells)-1
		switch {
		case fields[i].Key == "line":
			cell = textutil.PadLeft(cell, widths[i])
		case !last:
			cell = textutil.PadRight(cell, widths[i])
		}
		bw.WriteString(cell)
		if !last {
			bw.WriteString(columnGap)
		}
	}
	bw.WriteByte('\n')
}

func cellStyle(key string, f model.Finding, style TableStyle) termcolor.Style {
	switch key {
	case "method":
		return termcolor.MethodStyle(f.Method, style.Scheme, style.Profile)
	case "file", "location":
		return termcolor.PathStyle()
	case "line":
		return termcolor.LineStyle()
	default:
		return termcolor.Style{}
	}
}

func flattenCell(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ").Replace(s)
}
