// Package corpus loads the static paper corpus used by the fallback path.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// maxLineBytes bounds a single corpus line.
const maxLineBytes = 1 << 20

// Record is one corpus entry. Identity is its position in the loaded slice.
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Lang        string `json:"lang,omitempty"`
}

// ParseStats summarizes a ParseJSONL run.
type ParseStats struct {
	Lines   int
	Skipped int
}

// ParseJSONL decodes one JSON object per line. Blank lines are ignored; lines that
// fail to decode, carry no title or exceed maxLineBytes are skipped. The returned
// error is the reader's error, if any, and the records parsed before it are still
// returned.
func ParseJSONL(r io.Reader) ([]Record, ParseStats, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	records := []Record{}
	var stats ParseStats
	for {
		line, tooLong, err := readLine(br)
		if len(line) > 0 || tooLong {
			if rec, ok := parseLine(line, tooLong, &stats); ok {
				records = append(records, rec)
			}
		}
		if err == io.EOF {
			return records, stats, nil
		}
		if err != nil {
			return records, stats, err
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed and reported as tooLong with no content.
func readLine(br *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if !tooLong {
			if len(line)+len(frag) > maxLineBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, frag...)
			}
		}
		if err != nil || !isPrefix {
			return line, tooLong, err
		}
	}
}

func parseLine(line []byte, tooLong bool, stats *ParseStats) (Record, bool) {
	if tooLong {
		stats.Lines++
		stats.Skipped++
		return Record{}, false
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Record{}, false
	}
	stats.Lines++

	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		stats.Skipped++
		return Record{}, false
	}
	if strings.TrimSpace(rec.Title) == "" {
		stats.Skipped++
		return Record{}, false
	}
	return rec, true
}

// WriteJSONL encodes records one per line.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
