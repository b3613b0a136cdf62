package view

import (
	"bufio"
	"io"
	"strings"
)

// WriteCSV writes the table as comma-separated text: the header row as is,
// every data field double-quoted with embedded quotes doubled, lines joined
// by "\n" without a trailing newline.
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.Header, ",")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for i, field := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(field)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// CSV renders the table with WriteCSV.
func (t Table) CSV() []byte {
	var sb strings.Builder
	_ = WriteCSV(&sb, t)
	return []byte(sb.String())
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
