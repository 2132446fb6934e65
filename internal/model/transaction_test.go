package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTxn() Transaction {
	return Transaction{
		SourceID:    "boa_20240105_COFFEESHOP_-4.50",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "COFFEE SHOP",
		Amount:      decimal.NewFromFloat(-4.50),
		AccountType: AccountChecking,
		Source:      "Bank of America",
	}
}

func TestTransaction_Validate(t *testing.T) {
	assert.NoError(t, validTxn().Validate())
}

func TestTransaction_Validate_EmptyDescription(t *testing.T) {
	txn := validTxn()
	txn.Description = "   "
	err := txn.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)
}

func TestTransaction_Validate_ZeroDate(t *testing.T) {
	txn := validTxn()
	txn.Date = time.Time{}
	var verr *ValidationError
	require.ErrorAs(t, txn.Validate(), &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestTransaction_Validate_EmptySourceID(t *testing.T) {
	txn := validTxn()
	txn.SourceID = ""
	var verr *ValidationError
	require.ErrorAs(t, txn.Validate(), &verr)
	assert.Equal(t, "source_id", verr.Field)
}

func TestTransaction_Validate_UnknownAccountType(t *testing.T) {
	txn := validTxn()
	txn.AccountType = "mattress"
	var verr *ValidationError
	require.ErrorAs(t, txn.Validate(), &verr)
	assert.Equal(t, "account_type", verr.Field)
}

func TestTransaction_SameIdentity(t *testing.T) {
	a := validTxn()
	b := validTxn()
	assert.True(t, a.SameIdentity(b))

	// Same source ID on a different account is a different row.
	b.AccountType = AccountSavings
	assert.False(t, a.SameIdentity(b))

	c := validTxn()
	c.SourceID = "boa_20240106_PAYCHECK_2000.00"
	assert.False(t, a.SameIdentity(c))
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.NotEmpty(t, cats)

	seen := map[string]bool{}
	for _, c := range cats {
		assert.True(t, c.IsSystemDefault)
		assert.False(t, seen[c.Name], "duplicate category %s", c.Name)
		seen[c.Name] = true
	}
	assert.True(t, seen["Uncategorized"])
	assert.True(t, seen["Income"])
}
