package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

func TestRobinhoodAdapter_Parse(t *testing.T) {
	a := &RobinhoodAdapter{}
	res, err := a.Parse(loadDoc(t, "robinhood.csv"))
	require.NoError(t, err)

	// The footer row carries a date cell ("Total") and an amount, so it
	// survives Parse and gets rejected during Normalize instead.
	require.Len(t, res.Rows, 4)
	assert.Equal(t, 0, res.Unparsed)

	assert.Equal(t, "COFFEE SHOP", res.Rows[0].Fields["merchant"])
	assert.Equal(t, "-4.50", res.Rows[0].Fields["amount"])
}

func TestRobinhoodAdapter_Parse_NoDateColumn(t *testing.T) {
	a := &RobinhoodAdapter{}
	_, err := a.Parse(Document{Name: "x.csv", Data: []byte("foo,bar\n1,2\n")})

	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "robinhood", ufe.Adapter)
}

func TestRobinhoodAdapter_Normalize(t *testing.T) {
	a := &RobinhoodAdapter{}
	res, err := a.Parse(loadDoc(t, "robinhood.csv"))
	require.NoError(t, err)

	purchase, err := a.Normalize(res.Rows[0])
	require.NoError(t, err)
	assert.Equal(t, "COFFEE SHOP", purchase.Description)
	assert.Equal(t, "-4.50", purchase.Amount.StringFixed(2))
	assert.Equal(t, model.AccountCredit, purchase.AccountType)
	assert.Equal(t, "Robinhood", purchase.Source)
	assert.Contains(t, purchase.SourceID, "robinhood_20240105_")

	deposit, err := a.Normalize(res.Rows[1])
	require.NoError(t, err)
	assert.Equal(t, "2000.00", deposit.Amount.StringFixed(2))
}

func TestRobinhoodAdapter_Normalize_ZeroAmount(t *testing.T) {
	a := &RobinhoodAdapter{}
	res, err := a.Parse(loadDoc(t, "robinhood.csv"))
	require.NoError(t, err)

	_, err = a.Normalize(res.Rows[2])
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
	assert.Equal(t, "zero amount", verr.Reason)
}

func TestRobinhoodAdapter_Normalize_FooterRow(t *testing.T) {
	a := &RobinhoodAdapter{}
	res, err := a.Parse(loadDoc(t, "robinhood.csv"))
	require.NoError(t, err)

	_, err = a.Normalize(res.Rows[3])
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestRobinhoodAdapter_Normalize_DescriptionFallbacks(t *testing.T) {
	a := &RobinhoodAdapter{}
	row := func(merchant, detail, typ string) RawRow {
		return RawRow{Line: 2, Fields: map[string]string{
			"date": "2024-01-05", "amount": "-1.00",
			"merchant": merchant, "description": detail, "type": typ,
		}}
	}

	txn, err := a.Normalize(row("SHOP", "Order 42", "Purchase"))
	require.NoError(t, err)
	assert.Equal(t, "SHOP - Order 42", txn.Description)

	txn, err = a.Normalize(row("", "Order 42", "Purchase"))
	require.NoError(t, err)
	assert.Equal(t, "Order 42", txn.Description)

	txn, err = a.Normalize(row("", "", "Purchase"))
	require.NoError(t, err)
	assert.Equal(t, "Purchase", txn.Description)
}

func TestRobinhoodAdapter_CanParse(t *testing.T) {
	a := &RobinhoodAdapter{}
	assert.True(t, a.CanParse(loadDoc(t, "robinhood.csv")))
	assert.False(t, a.CanParse(loadDoc(t, "venmo.csv")))
	assert.False(t, a.CanParse(fakePDF("card.pdf")))
}
