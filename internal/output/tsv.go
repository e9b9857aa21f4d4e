package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/phyten/emptymon/internal/model"
)

// WriteTSV writes a header line and one tab-separated line per finding.
// Tabs and newlines inside values become spaces.
func WriteTSV(w io.Writer, findings []model.Finding, sel FieldSelection) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Headers(sel.Fields), "\t"))
	bw.WriteByte('\n')
	for _, f := range findings {
		row := RowValues(f, sel.Fields)
		for i := range row {
			row[i] = flattenCell(row[i])
		}
		bw.WriteString(strings.Join(row, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
