package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// VenmoAdapter parses Venmo CSV exports. Venmo files carry a couple of
// preamble rows before the real header, and column order varies between
// export versions, so columns are matched by header name.
//
// Source ID: venmo_<yyyymmdd>_<description prefix>_<amount>.
type VenmoAdapter struct{}

// venmoDateLayouts covers the timestamp formats seen in Venmo exports.
var venmoDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Name implements Adapter.
func (a *VenmoAdapter) Name() string { return "venmo" }

// CanParse accepts CSV documents whose header mentions Venmo's datetime and
// amount columns. PDFs are rejected outright.
func (a *VenmoAdapter) CanParse(doc Document) bool {
	if doc.Ext() != ".csv" || isPDF(doc.Data) {
		return false
	}
	return sniffCSVHeader(doc.Data, "datetime", "amount")
}

// Parse locates the header row, then extracts every record that carries a
// date and an amount. Summary and footer rows fail the numeric-amount check
// during Normalize and are skipped there.
func (a *VenmoAdapter) Parse(doc Document) (ParseResult, error) {
	records, err := readCSVRecords(doc.Data)
	if err != nil {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: err.Error()}
	}

	headerAt := -1
	var idx map[string]int
	for i, rec := range records {
		candidate := headerIndex(rec)
		if _, ok := candidate["datetime"]; ok {
			headerAt = i
			idx = candidate
			break
		}
	}
	if headerAt < 0 {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: "no datetime header row found"}
	}

	var res ParseResult
	for i, rec := range records[headerAt+1:] {
		line := headerAt + i + 2
		date := field(rec, idx, "datetime")
		amount := field(rec, idx, "amount (total)")
		if amount == "" {
			amount = field(rec, idx, "amount")
		}
		if date == "" || amount == "" {
			res.Unparsed++
			continue
		}
		res.Rows = append(res.Rows, RawRow{
			Line: line,
			Fields: map[string]string{
				"date":   date,
				"note":   field(rec, idx, "note"),
				"from":   field(rec, idx, "from"),
				"to":     field(rec, idx, "to"),
				"amount": amount,
			},
		})
	}
	return res, nil
}

// Normalize implements Adapter. Venmo amounts are already signed (payments
// sent are negative), formatted like "- $12.50".
func (a *VenmoAdapter) Normalize(row RawRow) (model.Transaction, error) {
	date, err := parseVenmoDate(row.Fields["date"])
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "date", Reason: fmt.Sprintf("unparseable %q", row.Fields["date"])}
	}

	amount, err := decimal.NewFromString(cleanMoney(row.Fields["amount"]))
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: fmt.Sprintf("non-numeric %q", row.Fields["amount"])}
	}

	note := row.Fields["note"]
	var desc string
	switch {
	case row.Fields["to"] != "":
		desc = strings.TrimSpace(fmt.Sprintf("To %s: %s", row.Fields["to"], note))
	case row.Fields["from"] != "":
		desc = strings.TrimSpace(fmt.Sprintf("From %s: %s", row.Fields["from"], note))
	case note != "":
		desc = note
	default:
		desc = "Venmo Transaction"
	}

	txn := model.Transaction{
		SourceID:    makeSourceID(a.Name(), date, desc, amount.StringFixed(2)),
		Date:        date,
		Description: desc,
		Amount:      amount,
		AccountType: model.AccountPeerPayment,
		Source:      "Venmo",
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

func parseVenmoDate(s string) (time.Time, error) {
	for _, layout := range venmoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", s)
}

// cleanMoney strips currency decoration: "+ $1,234.50" -> "1234.50",
// "- $12.00" -> "-12.00".
func cleanMoney(s string) string {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+- ")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if neg {
		s = "-" + s
	}
	return s
}
