// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. ID is the header up to the first whitespace.
type Record struct {
	ID  string
	Seq []byte
}

// Each calls fn for every record of r in order. Sequence lines are joined
// and upper-cased. fn owns the record it receives.
func Each(r io.Reader, fn func(Record) error) error {
	br := bufio.NewReader(r)
	var (
		id     string
		buf    []byte
		inRec  bool
		lineNo int
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return fn(Record{ID: id, Seq: bytes.Clone(buf)})
	}
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF
		lineNo++
		line = bytes.TrimRight(line, "\r\n")
		switch {
		case len(line) > 0 && line[0] == '>': // new header
			if ferr := flush(); ferr != nil {
				return ferr
			}
			fields := strings.Fields(string(line[1:]))
			if len(fields) == 0 {
				return fmt.Errorf("fasta: line %d: empty header", lineNo)
			}
			id, buf, inRec = fields[0], buf[:0], true
		case len(line) > 0:
			if !inRec {
				return fmt.Errorf("fasta: line %d: sequence before first header", lineNo)
			}
			buf = append(buf, bytes.ToUpper(bytes.TrimSpace(line))...)
		}
		if eof {
			break
		}
	}
	return flush()
}

// ReadFile loads every record of path ("-" for stdin, ".gz" decompressed).
func ReadFile(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var out []Record
	err = Each(rc, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

/* ---------------- small helpers ---------------- */

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
