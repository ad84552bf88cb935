// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"
)

func init() { Register("json", writeJSON) }

// writeJSON writes a single JSON array of v1 results (pretty-indented).
func writeJSON(w io.Writer, r Report, _ bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Results())
}
