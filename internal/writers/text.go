// internal/writers/text.go
package writers

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// TSVHeader is the canonical header row for text output.
const TSVHeader = "sequence_id\tanchor_index\tanchor\tanswer\tvalue"

func init() { Register("text", writeTSV) }

// writeTSV emits one row per wire record. First-match answers leave the
// anchor columns empty; NA cells read "NA".
func writeTSV(w io.Writer, r Report, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
			return err
		}
	}
	var sb strings.Builder
	for _, v := range r.Results() {
		sb.Reset()
		sb.WriteString(v.SequenceID)
		sb.WriteByte('\t')
		if v.AnchorIndex > 0 {
			sb.WriteString(strconv.Itoa(v.AnchorIndex))
		}
		sb.WriteByte('\t')
		if v.AnchorIndex > 0 {
			sb.WriteString(optInt(v.Anchor))
		}
		sb.WriteByte('\t')
		sb.WriteString(v.Answer)
		sb.WriteByte('\t')
		switch {
		case v.Matched != nil:
			sb.WriteString(strings.ToUpper(strconv.FormatBool(*v.Matched)))
		default:
			sb.WriteString(optInt(v.Value))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func optInt(p *int) string {
	if p == nil {
		return "NA"
	}
	return strconv.Itoa(*p)
}
