package importer

import (
	"fmt"
	"strings"
	"time"
)

// makeSourceID composes the dedupe key used by the statement adapters:
// <adapter>_<yyyymmdd>_<description prefix>_<amount>. The OFX adapter uses
// the bank-assigned FITID instead, so each adapter documents its own key.
func makeSourceID(adapter string, date time.Time, desc, amount string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 12 {
		prefix = prefix[:12]
	}
	return fmt.Sprintf("%s_%s_%s_%s", adapter, date.Format("20060102"), strings.ToUpper(prefix), amount)
}
