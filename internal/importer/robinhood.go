package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// RobinhoodAdapter parses Robinhood credit card CSV exports. The header sits
// on the first row but column order varies, so columns are matched by name.
// Footer/summary rows carry non-numeric or empty amounts and are filtered
// out; zero-amount rows (declined or reversed) are dropped too.
//
// Source ID: robinhood_<yyyymmdd>_<description prefix>_<amount>.
type RobinhoodAdapter struct{}

var robinhoodDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
}

// Name implements Adapter.
func (a *RobinhoodAdapter) Name() string { return "robinhood" }

// CanParse accepts CSV documents with a merchant column in the header.
func (a *RobinhoodAdapter) CanParse(doc Document) bool {
	if doc.Ext() != ".csv" || isPDF(doc.Data) {
		return false
	}
	return sniffCSVHeader(doc.Data, "date", "merchant", "amount")
}

// Parse implements Adapter.
func (a *RobinhoodAdapter) Parse(doc Document) (ParseResult, error) {
	records, err := readCSVRecords(doc.Data)
	if err != nil {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: err.Error()}
	}
	if len(records) == 0 {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: "empty document"}
	}

	idx := headerIndex(records[0])
	if _, ok := idx["date"]; !ok {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: "no date column in header"}
	}

	var res ParseResult
	for i, rec := range records[1:] {
		date := field(rec, idx, "date")
		amount := field(rec, idx, "amount")
		if date == "" || amount == "" {
			res.Unparsed++
			continue
		}
		res.Rows = append(res.Rows, RawRow{
			Line: i + 2,
			Fields: map[string]string{
				"date":        date,
				"merchant":    field(rec, idx, "merchant"),
				"description": field(rec, idx, "description"),
				"type":        field(rec, idx, "type"),
				"amount":      amount,
			},
		})
	}
	return res, nil
}

// Normalize implements Adapter.
func (a *RobinhoodAdapter) Normalize(row RawRow) (model.Transaction, error) {
	date, err := parseRobinhoodDate(row.Fields["date"])
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "date", Reason: fmt.Sprintf("unparseable %q", row.Fields["date"])}
	}

	amount, err := decimal.NewFromString(cleanMoney(row.Fields["amount"]))
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: fmt.Sprintf("non-numeric %q", row.Fields["amount"])}
	}
	if amount.IsZero() {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: "zero amount"}
	}

	merchant := row.Fields["merchant"]
	detail := row.Fields["description"]
	var desc string
	switch {
	case merchant != "" && detail != "":
		desc = merchant + " - " + detail
	case merchant != "":
		desc = merchant
	case detail != "":
		desc = detail
	default:
		desc = row.Fields["type"]
	}
	desc = strings.TrimSpace(desc)

	txn := model.Transaction{
		SourceID:    makeSourceID(a.Name(), date, desc, amount.StringFixed(2)),
		Date:        date,
		Description: desc,
		Amount:      amount,
		AccountType: model.AccountCredit,
		Source:      "Robinhood",
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

func parseRobinhoodDate(s string) (time.Time, error) {
	for _, layout := range robinhoodDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", s)
}
