package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies the account a statement was exported from.
type AccountType string

const (
	AccountChecking    AccountType = "checking"
	AccountSavings     AccountType = "savings"
	AccountCredit      AccountType = "credit"
	AccountBrokerage   AccountType = "brokerage"
	AccountPeerPayment AccountType = "peer-payment"
)

// Transaction is the canonical record produced by every adapter.
// Negative amounts are expenses, positive amounts are income, regardless
// of how the source format expresses them.
type Transaction struct {
	ID          string
	SourceID    string // adapter-composed dedupe key, unique per (SourceID, AccountType)
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	AccountType AccountType
	Source      string // institution name, e.g. "Bank of America"

	CategoryID   string
	CategoryName string
	IsCorrected  bool // true once a user confirms the category; never unset

	ImportedAt time.Time
}

// Validate checks the fields every adapter must fill in.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "description", Reason: "empty"}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "missing"}
	}
	if t.SourceID == "" {
		return &ValidationError{Field: "source_id", Reason: "empty"}
	}
	switch t.AccountType {
	case AccountChecking, AccountSavings, AccountCredit, AccountBrokerage, AccountPeerPayment:
	default:
		return &ValidationError{Field: "account_type", Reason: "unknown value " + string(t.AccountType)}
	}
	return nil
}

// SameIdentity reports whether two transactions are the same statement row.
// Identity is (SourceID, AccountType); re-importing an overlapping statement
// must not create a second row with the same identity.
func (t Transaction) SameIdentity(other Transaction) bool {
	return t.SourceID == other.SourceID && t.AccountType == other.AccountType
}
