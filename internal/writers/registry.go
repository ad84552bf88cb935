// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// WriteFunc serializes a whole report to w.
type WriteFunc func(w io.Writer, r Report, header bool) error

// Writer registry (format → handler). Formats register in init() blocks.
var registry = map[string]WriteFunc{}

// Register installs fn for format (idempotent last-wins).
func Register(format string, fn WriteFunc) { registry[format] = fn }

// Formats lists the registered format names in order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches r to the writer registered for format. Broken pipes are
// swallowed.
func Write(format string, w io.Writer, r Report, header bool) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	if err := fn(w, r, header); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
