package importer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// OFXAdapter parses OFX/QFX exports. Banks assign every transaction a FITID
// that is stable across downloads, so it serves as the dedupe key directly
// instead of a composed one.
//
// Source ID: ofx_<FITID>.
type OFXAdapter struct{}

const ofxDateLayout = "2006-01-02"

// Name implements Adapter.
func (a *OFXAdapter) Name() string { return "ofx" }

// CanParse accepts .ofx/.qfx documents carrying an OFX signature.
func (a *OFXAdapter) CanParse(doc Document) bool {
	ext := doc.Ext()
	if ext != ".ofx" && ext != ".qfx" {
		return false
	}
	head := doc.Data
	if len(head) > 4096 {
		head = head[:4096]
	}
	return bytes.Contains(head, []byte("OFXHEADER")) || bytes.Contains(head, []byte("<OFX>"))
}

// Parse implements Adapter. Bank statements map to checking accounts,
// credit card statements to credit.
func (a *OFXAdapter) Parse(doc Document) (ParseResult, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(doc.Data))
	if err != nil {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: err.Error()}
	}
	if len(resp.Bank) == 0 && len(resp.CreditCard) == 0 {
		return ParseResult{}, &UnsupportedFormatError{Adapter: a.Name(), Reason: "no bank or credit card statements"}
	}

	var res ParseResult
	appendTxns := func(txns []ofxgo.Transaction, account model.AccountType) {
		for _, txn := range txns {
			if string(txn.FiTID) == "" {
				res.Unparsed++
				continue
			}
			res.Rows = append(res.Rows, RawRow{
				Fields: map[string]string{
					"date":         txn.DtPosted.Time.Format(ofxDateLayout),
					"name":         string(txn.Name),
					"memo":         string(txn.Memo),
					"amount":       txn.TrnAmt.String(),
					"fitid":        string(txn.FiTID),
					"account_type": string(account),
				},
			})
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			appendTxns(stmt.BankTranList.Transactions, model.AccountChecking)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			appendTxns(stmt.BankTranList.Transactions, model.AccountCredit)
		}
	}
	return res, nil
}

// Normalize implements Adapter. OFX amounts are already signed with the
// canonical convention (debits negative).
func (a *OFXAdapter) Normalize(row RawRow) (model.Transaction, error) {
	date, err := time.Parse(ofxDateLayout, row.Fields["date"])
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "date", Reason: fmt.Sprintf("unparseable %q", row.Fields["date"])}
	}

	amount, err := decimal.NewFromString(row.Fields["amount"])
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: fmt.Sprintf("non-numeric %q", row.Fields["amount"])}
	}

	// Some banks put the useful text in NAME, others in MEMO.
	desc := strings.TrimSpace(row.Fields["name"])
	if memo := strings.TrimSpace(row.Fields["memo"]); memo != "" && !strings.EqualFold(memo, desc) {
		if desc == "" {
			desc = memo
		} else {
			desc = desc + " " + memo
		}
	}

	txn := model.Transaction{
		SourceID:    "ofx_" + row.Fields["fitid"],
		Date:        date,
		Description: desc,
		Amount:      amount,
		AccountType: model.AccountType(row.Fields["account_type"]),
		Source:      "OFX",
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}
