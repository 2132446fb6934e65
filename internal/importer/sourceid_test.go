package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMakeSourceID(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	got := makeSourceID("boa", date, "STARBUCKS STORE 08714 AUSTIN TX", "-4.50")
	assert.Equal(t, "boa_20240105_STARBUCKSSTO_-4.50", got)

	// Punctuation never leaks into the key.
	got = makeSourceID("venmo", date, "To Bob: $$$", "-5.00")
	assert.Equal(t, "venmo_20240105_TOBOB_-5.00", got)

	// Same inputs compose the same key.
	again := makeSourceID("venmo", date, "To Bob: $$$", "-5.00")
	assert.Equal(t, got, again)
}
