package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/emptymon/internal/model"
)

// WriteCSV renders findings as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, findings []model.Finding, sel FieldSelection) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, f := range findings {
		if err := writer.Write(RowValues(f, sel.Fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
