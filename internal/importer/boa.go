package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// BoAAdapter parses Bank of America checking/savings PDF statements. The
// statement lists deposits and withdrawals in separate sections with
// unsigned amounts; withdrawals are negated during normalization.
//
// Source ID: boa_<yyyymmdd>_<description prefix>_<amount>.
type BoAAdapter struct{}

const boaDateLayout = "01/02/06"

var (
	// Transaction rows start with MM/DD/YY.
	boaDateRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(.+)$`)
	// Amounts sit at the end of the row, optionally negative, with commas.
	boaAmountRe = regexp.MustCompile(`(-?[\d,]+\.\d{2})$`)
	// A row holding nothing but an amount continues the previous row.
	boaAmountOnlyRe = regexp.MustCompile(`^(-?[\d,]+\.\d{2})$`)
)

// boaSkipPhrases mark page furniture interleaved with transaction rows.
var boaSkipPhrases = []string{
	"date description amount",
	"continued on",
	"page ",
	"account #",
	"ending balance",
	"beginning balance",
	"account security",
	"check your security",
	"mobile banking",
	"scan the code",
	"braille and large print",
}

// boaDescPrefixes are boilerplate lead-ins stripped from descriptions.
var boaDescPrefixes = []string{"MOBILE PURCHASE", "PURCHASE", "CHECKCARD", "POS"}

// Name implements Adapter.
func (a *BoAAdapter) Name() string { return "boa" }

// CanParse accepts PDF documents only.
func (a *BoAAdapter) CanParse(doc Document) bool {
	return doc.Ext() == ".pdf" && isPDF(doc.Data)
}

// Parse extracts transaction rows from the statement text. Multi-page
// documents, repeated page headers, and descriptions wrapped across lines
// are all tolerated; lines matching neither the date nor the amount
// heuristic are dropped and counted.
func (a *BoAAdapter) Parse(doc Document) (ParseResult, error) {
	if !isPDF(doc.Data) {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: "missing %PDF signature"}
	}
	lines, err := extractPDFLines(doc.Data)
	if err != nil {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: err.Error()}
	}
	return parseBoALines(lines)
}

type boaPending struct {
	line       int
	date       string
	desc       string
	withdrawal bool
}

func parseBoALines(lines []string) (ParseResult, error) {
	var res ParseResult
	sawSection := false
	inDeposits, inWithdrawals := false, false
	var pending *boaPending

	dropPending := func() {
		if pending != nil {
			res.Unparsed++
			pending = nil
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if strings.Contains(lower, "deposits and other additions") {
			sawSection = true
			inDeposits, inWithdrawals = true, false
			continue
		}
		if strings.Contains(lower, "withdrawals and other subtractions") {
			sawSection = true
			inDeposits, inWithdrawals = false, true
			continue
		}
		if strings.Contains(lower, "total deposits") || strings.Contains(lower, "total withdrawals") {
			dropPending()
			inDeposits, inWithdrawals = false, false
			continue
		}

		if boaIsFurniture(lower) {
			continue
		}
		if !inDeposits && !inWithdrawals {
			continue
		}

		if m := boaDateRe.FindStringSubmatch(line); m != nil {
			// A new row starts; an unfinished previous row never got an
			// amount and cannot be recovered.
			dropPending()
			date, rest := m[1], m[2]
			if am := boaAmountRe.FindStringSubmatch(rest); am != nil {
				desc := strings.TrimSpace(rest[:len(rest)-len(am[1])])
				res.Rows = append(res.Rows, boaRow(i+1, date, desc, am[1], inWithdrawals))
			} else {
				// Amount is on a following line.
				pending = &boaPending{line: i + 1, date: date, desc: rest, withdrawal: inWithdrawals}
			}
			continue
		}

		if pending != nil {
			if am := boaAmountOnlyRe.FindStringSubmatch(line); am != nil {
				res.Rows = append(res.Rows, boaRow(pending.line, pending.date, pending.desc, am[1], pending.withdrawal))
				pending = nil
			} else if am := boaAmountRe.FindStringSubmatch(line); am != nil {
				desc := pending.desc + " " + strings.TrimSpace(line[:len(line)-len(am[1])])
				res.Rows = append(res.Rows, boaRow(pending.line, pending.date, desc, am[1], pending.withdrawal))
				pending = nil
			} else {
				pending.desc += " " + line
			}
			continue
		}

		// In-section line matching neither heuristic.
		res.Unparsed++
	}
	dropPending()

	if !sawSection {
		return ParseResult{}, &UnsupportedFormatError{Adapter: "boa", Reason: "no transaction sections found"}
	}
	return res, nil
}

func boaIsFurniture(lower string) bool {
	for _, phrase := range boaSkipPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func boaRow(line int, date, desc, amount string, withdrawal bool) RawRow {
	return RawRow{
		Line: line,
		Fields: map[string]string{
			"date":        date,
			"description": desc,
			"amount":      amount,
			"withdrawal":  fmt.Sprintf("%t", withdrawal),
		},
	}
}

// Normalize implements Adapter.
func (a *BoAAdapter) Normalize(row RawRow) (model.Transaction, error) {
	date, err := time.Parse(boaDateLayout, row.Fields["date"])
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "date", Reason: fmt.Sprintf("unparseable %q", row.Fields["date"])}
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(row.Fields["amount"], ",", ""))
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: fmt.Sprintf("non-numeric %q", row.Fields["amount"])}
	}
	if row.Fields["withdrawal"] == "true" && amount.IsPositive() {
		amount = amount.Neg()
	}

	desc := boaCleanDescription(row.Fields["description"])

	txn := model.Transaction{
		SourceID:    makeSourceID(a.Name(), date, desc, amount.StringFixed(2)),
		Date:        date,
		Description: desc,
		Amount:      amount,
		AccountType: model.AccountChecking,
		Source:      "Bank of America",
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

func boaCleanDescription(desc string) string {
	desc = strings.Join(strings.Fields(desc), " ")
	upper := strings.ToUpper(desc)
	for _, prefix := range boaDescPrefixes {
		if strings.HasPrefix(upper, prefix) {
			desc = strings.TrimSpace(desc[len(prefix):])
			break
		}
	}
	return desc
}
