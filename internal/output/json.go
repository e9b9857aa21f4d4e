package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/emptymon/internal/engine"
)

// WriteJSON encodes the whole result, indented.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
