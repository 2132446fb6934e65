package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorq03-ops/personalfinancetracker/internal/classify"
	"github.com/connorq03-ops/personalfinancetracker/internal/model"
	"github.com/connorq03-ops/personalfinancetracker/internal/store"
)

var testSeed = []classify.Example{
	{Description: "UBER TRIP", Category: "Transport"},
	{Description: "LYFT RIDE", Category: "Transport"},
	{Description: "CHIPOTLE ONLINE", Category: "Dining"},
	{Description: "MCDONALDS 1234", Category: "Dining"},
}

func insertTxn(t *testing.T, st store.RecordStore, id, desc string) model.Transaction {
	t.Helper()
	txn := model.Transaction{
		ID:          id,
		SourceID:    "test_" + id,
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.RequireFromString("-4.50"),
		AccountType: model.AccountChecking,
		Source:      "Test",
		ImportedAt:  time.Now().UTC(),
	}
	require.NoError(t, st.Insert(txn))
	return txn
}

func newRecorder(threshold int) (*Recorder, *store.MemoryStore, *classify.Engine) {
	st := store.NewMemoryStore()
	eng := classify.NewEngine()
	return NewRecorder(st, eng, testSeed, threshold, 1, zerolog.Nop()), st, eng
}

func TestRecordCorrection(t *testing.T) {
	rec, st, _ := newRecorder(0)
	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")

	got, err := rec.RecordCorrection(context.Background(), "t1", "Coffee Shops")
	require.NoError(t, err)

	assert.True(t, got.IsCorrected)
	assert.Equal(t, "Coffee Shops", got.CategoryName)
	assert.NotEmpty(t, got.CategoryID)

	// The category was created on demand.
	cat, err := st.EnsureCategory("Coffee Shops")
	require.NoError(t, err)
	assert.Equal(t, got.CategoryID, cat.ID)
}

func TestRecordCorrection_UnknownTransaction(t *testing.T) {
	rec, _, _ := newRecorder(0)
	_, err := rec.RecordCorrection(context.Background(), "missing", "Dining")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordCorrection_ThresholdTriggersRetrain(t *testing.T) {
	rec, st, eng := newRecorder(2)
	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")
	insertTxn(t, st, "t2", "PEETS COFFEE 42")

	_, err := rec.RecordCorrection(context.Background(), "t1", "Dining")
	require.NoError(t, err)
	assert.False(t, eng.Trained(), "one correction is below the threshold")

	_, err = rec.RecordCorrection(context.Background(), "t2", "Dining")
	require.NoError(t, err)
	assert.True(t, eng.Trained(), "second correction reaches the threshold")
}

func TestRecordCorrection_RepeatDoesNotCount(t *testing.T) {
	rec, st, eng := newRecorder(2)
	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")

	for i := 0; i < 5; i++ {
		got, err := rec.RecordCorrection(context.Background(), "t1", "Dining")
		require.NoError(t, err)
		assert.True(t, got.IsCorrected)
	}
	assert.False(t, eng.Trained(), "identical corrections must not accumulate")
}

func TestCorrectionSurvivesModelAssignment(t *testing.T) {
	rec, st, _ := newRecorder(0)
	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")

	_, err := rec.RecordCorrection(context.Background(), "t1", "Dining")
	require.NoError(t, err)

	// A later model-driven assignment never clears the confirmation.
	other, err := st.EnsureCategory("Shopping")
	require.NoError(t, err)
	require.NoError(t, st.SetCategory("t1", other, false))

	got, err := st.Get("t1")
	require.NoError(t, err)
	assert.True(t, got.IsCorrected)
}

func TestRetrain_LearnsFromCorrections(t *testing.T) {
	rec, st, eng := newRecorder(0)
	_, err := rec.Retrain(context.Background())
	require.NoError(t, err)

	before, err := eng.Predict("STARBUCKS STORE 99")
	require.NoError(t, err)

	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")
	_, err = rec.RecordCorrection(context.Background(), "t1", "Dining")
	require.NoError(t, err)

	stats, err := rec.Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(testSeed)+1, stats.ExampleCount)

	after, err := eng.Predict("STARBUCKS STORE 99")
	require.NoError(t, err)
	assert.Equal(t, "Dining", after.Category)
	assert.Greater(t, after.Confidence, before.Confidence)
}

func TestRetrain_BelowMinimumKeepsSeedOnly(t *testing.T) {
	st := store.NewMemoryStore()
	eng := classify.NewEngine()
	rec := NewRecorder(st, eng, testSeed, 0, 3, zerolog.Nop())

	insertTxn(t, st, "t1", "STARBUCKS STORE 08714")
	_, err := rec.RecordCorrection(context.Background(), "t1", "Dining")
	require.NoError(t, err)

	stats, err := rec.Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(testSeed), stats.ExampleCount, "one correction is below the minimum of three")
}

func TestRetrain_EmptySeedAndNoCorrections(t *testing.T) {
	st := store.NewMemoryStore()
	eng := classify.NewEngine()
	rec := NewRecorder(st, eng, nil, 0, 1, zerolog.Nop())

	_, err := rec.Retrain(context.Background())
	assert.ErrorIs(t, err, classify.ErrEmptyTrainingSet)
}

func TestRetrain_CancelledContext(t *testing.T) {
	rec, _, _ := newRecorder(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rec.Retrain(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
