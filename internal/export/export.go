// Package export produces the CSV and JSON download artifacts for an
// extraction result or a saved record.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"sofhub/internal/domain"
)

// columns is the fixed CSV header.
var columns = []string{"Event Name", "Start Time", "End Time"}

// EventsCSV renders events under the fixed three-column header. One escaping
// rule everywhere: a field is quoted when it contains a comma, quote, or
// newline, and embedded quotes are doubled, which is exactly what
// encoding/csv does.
func EventsCSV(events []domain.Event) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, ev := range events {
		if err := w.Write([]string{ev.Name, ev.Start, ev.End}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON serializes the full object with two-space indentation. No field
// filtering: internal bookkeeping fields ship with the artifact.
func JSON(v interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CSVFilename returns the download name for an events CSV, embedding the
// current date.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("laytime-events-%s.csv", now.Format("2006-01-02"))
}

// JSONFilename returns the download name for a JSON artifact.
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("laytime-data-%s.json", now.Format("2006-01-02"))
}
