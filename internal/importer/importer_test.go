package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// loadDoc reads a fixture from the repo testdata directory.
func loadDoc(t *testing.T, name string) Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return Document{Name: name, Data: data}
}

// fakePDF returns a document carrying the PDF magic bytes but no real
// structure, enough to exercise CanParse.
func fakePDF(name string) Document {
	return Document{Name: name, Data: []byte("%PDF-1.7\n%fake")}
}
