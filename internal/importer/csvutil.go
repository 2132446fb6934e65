package importer

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// readCSVRecords parses document bytes as CSV with variable field counts,
// which tolerates preamble rows and ragged footers.
func readCSVRecords(data []byte) ([][]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// headerIndex lowercases and trims a header record into a name -> column map,
// so adapters match columns by name instead of position.
func headerIndex(record []string) map[string]int {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// field returns the named column of a record, or "" when the column is
// missing or the record is too short.
func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// sniffCSVHeader reports whether any of the first few lines of the document
// contains all the given header names. Used by CanParse; cheap, no full
// parse.
func sniffCSVHeader(data []byte, names ...string) bool {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	lines := strings.Split(string(head), "\n")
	if len(lines) > 8 {
		lines = lines[:8]
	}
	for _, line := range lines {
		lower := strings.ToLower(line)
		all := true
		for _, name := range names {
			if !strings.Contains(lower, name) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
