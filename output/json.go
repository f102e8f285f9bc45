package output

import (
	"encoding/json"
	"io"
)

// WriteJSON renders reports as indented JSON.
func WriteJSON(w io.Writer, reports any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
