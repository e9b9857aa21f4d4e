package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/emptymon/internal/model"
)

// WriteNDJSON streams findings as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, findings []model.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range findings {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}
