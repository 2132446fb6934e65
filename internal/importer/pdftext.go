package importer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfSignature is the magic prefix every PDF starts with.
var pdfSignature = []byte("%PDF-")

// isPDF reports whether the document bytes carry the PDF signature.
func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfSignature)
}

// extractPDFLines pulls the text out of a PDF document, one line per visual
// row, pages in order. Extraction noise (odd spacing, split words) is left
// for the caller's row heuristics to deal with.
func extractPDFLines(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		// Top of the page first.
		sort.Slice(rows, func(a, b int) bool { return rows[a].Position > rows[b].Position })

		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}
