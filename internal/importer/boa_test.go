package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

func boaLines(t *testing.T) []string {
	t.Helper()
	doc := loadDoc(t, "boa_statement.txt")
	return strings.Split(string(doc.Data), "\n")
}

func TestParseBoALines(t *testing.T) {
	res, err := parseBoALines(boaLines(t))
	require.NoError(t, err)

	require.Len(t, res.Rows, 4)
	assert.Equal(t, 1, res.Unparsed) // the stray extraction artifact line

	assert.Equal(t, "01/05/24", res.Rows[0].Fields["date"])
	assert.Equal(t, "2,000.00", res.Rows[0].Fields["amount"])
	assert.Equal(t, "false", res.Rows[0].Fields["withdrawal"])

	// Amount on its own line continues the previous row.
	assert.Equal(t, "Mobile Check Deposit", res.Rows[1].Fields["description"])
	assert.Equal(t, "450.00", res.Rows[1].Fields["amount"])

	assert.Equal(t, "true", res.Rows[2].Fields["withdrawal"])

	// Wrapped description with trailing amount.
	assert.Equal(t, "UBER *TRIP HELP.UBER.COM CA 23456789012", res.Rows[3].Fields["description"])
	assert.Equal(t, "18.75", res.Rows[3].Fields["amount"])
}

func TestParseBoALines_SkipsPageFurniture(t *testing.T) {
	res, err := parseBoALines(boaLines(t))
	require.NoError(t, err)

	for _, row := range res.Rows {
		assert.NotContains(t, strings.ToLower(row.Fields["description"]), "page ")
		assert.NotContains(t, strings.ToLower(row.Fields["description"]), "continued on")
	}
}

func TestParseBoALines_NoSections(t *testing.T) {
	lines := []string{"Some random document", "01/05/24 LOOKS LIKE A ROW 4.50"}
	_, err := parseBoALines(lines)

	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "boa", ufe.Adapter)
}

func TestBoAAdapter_Normalize(t *testing.T) {
	a := &BoAAdapter{}

	txn, err := a.Normalize(boaRow(1, "01/06/24", "CHECKCARD 0105 STARBUCKS STORE 08714 AUSTIN TX", "4.50", true))
	require.NoError(t, err)

	assert.Equal(t, "0105 STARBUCKS STORE 08714 AUSTIN TX", txn.Description)
	assert.Equal(t, "-4.50", txn.Amount.StringFixed(2))
	assert.Equal(t, model.AccountChecking, txn.AccountType)
	assert.Equal(t, "Bank of America", txn.Source)
	assert.Equal(t, 2024, txn.Date.Year())
	assert.Equal(t, 6, txn.Date.Day())
	assert.Contains(t, txn.SourceID, "boa_20240106_")
}

func TestBoAAdapter_Normalize_DepositKeepsSign(t *testing.T) {
	a := &BoAAdapter{}
	txn, err := a.Normalize(boaRow(1, "01/05/24", "ACME CORP DES:DIR DEP", "2,000.00", false))
	require.NoError(t, err)
	assert.Equal(t, "2000.00", txn.Amount.StringFixed(2))
	assert.True(t, txn.Amount.IsPositive())
}

func TestBoAAdapter_Normalize_BadDate(t *testing.T) {
	a := &BoAAdapter{}
	_, err := a.Normalize(boaRow(1, "13/45/24", "DESC", "4.50", false))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestBoAAdapter_Normalize_BadAmount(t *testing.T) {
	a := &BoAAdapter{}
	_, err := a.Normalize(boaRow(1, "01/05/24", "DESC", "NOTANUMBER", false))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestBoAAdapter_CanParse(t *testing.T) {
	a := &BoAAdapter{}
	assert.True(t, a.CanParse(fakePDF("statement.pdf")))
	assert.False(t, a.CanParse(Document{Name: "statement.pdf", Data: []byte("not a pdf")}))
	assert.False(t, a.CanParse(Document{Name: "statement.csv", Data: []byte("%PDF-1.7")}))
}

func TestBoAAdapter_Parse_GarbagePDF(t *testing.T) {
	a := &BoAAdapter{}
	_, err := a.Parse(fakePDF("statement.pdf"))

	var ufe *UnsupportedFormatError
	assert.ErrorAs(t, err, &ufe)
}

func TestBoACleanDescription(t *testing.T) {
	assert.Equal(t, "STARBUCKS", boaCleanDescription("CHECKCARD STARBUCKS"))
	assert.Equal(t, "TARGET 123", boaCleanDescription("MOBILE PURCHASE  TARGET   123"))
	assert.Equal(t, "PLAIN DESC", boaCleanDescription("PLAIN DESC"))
}
