// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

func init() { Register("jsonl", writeJSONL) }

// writeJSONL streams each v1 result as one JSON line.
func writeJSONL(w io.Writer, r Report, _ bool) error {
	bw := bwPool.Get().(*bufio.Writer)
	// Rebind to the actual output while keeping the pooled buffer.
	bw.Reset(w)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	t := r.Table
	for col := 0; col < t.Cols; col++ {
		for row := 0; row < t.Rows; row++ {
			if err := enc.Encode(r.result(row, col)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
