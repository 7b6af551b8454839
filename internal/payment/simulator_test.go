package payment

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"taxseva/internal/records"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testStore() *records.Store {
	return records.New([]records.Building{
		{
			BuildingID:   "B1",
			MobileNumber: "9000000000",
			Taxes: []records.Tax{
				{ID: "T1", TaxAmount: decimal.NewFromInt(1000), Penalty: decimal.NewFromInt(50), Status: records.StatusPending},
			},
		},
	})
}

func taxStatus(t *testing.T, s *records.Store) records.TaxStatus {
	t.Helper()
	b, ok := s.Building("B1")
	require.True(t, ok)
	tax := b.Tax("T1")
	require.NotNil(t, tax)
	return tax.Status
}

func TestSubmit_FailKeywordDeclines(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 0)

	out, err := sim.Submit("fail@upi", "B1", "T1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailure, out.Status)
	assert.Empty(t, out.ReferenceID)
	assert.Equal(t, records.StatusPending, taxStatus(t, store), "failure must not mutate the record")
}

func TestSubmit_SuccessKeywordCaptures(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 0)

	out, err := sim.Submit("success@upi", "B1", "T1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, out.Status)
	assert.True(t, out.Succeeded())
	assert.Equal(t, records.StatusPaid, taxStatus(t, store))
}

func TestSubmit_DefaultSuccessPolicy(t *testing.T) {
	// "fail" is the only discriminator; any identifier without it succeeds.
	store := testStore()
	sim := NewSimulator(store, 0)

	out, err := sim.Submit("anything@upi", "B1", "T1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, records.StatusPaid, taxStatus(t, store))
}

func TestSubmit_FailMatchIsCaseInsensitive(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 0)

	out, err := sim.Submit("FAILure@upi", "B1", "T1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailure, out.Status)
}

func TestSubmit_EmptyIdentifier(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 0)

	_, err := sim.Submit("   ", "B1", "T1")
	require.Error(t, err)
	assert.True(t, records.IsValidation(err))
	assert.Equal(t, records.StatusPending, taxStatus(t, store))
}

func TestSubmit_ReferenceIDFromTimestamp(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 0)
	sim.now = func() time.Time { return time.UnixMilli(1735689600123) }

	out, err := sim.Submit("ok@upi", "B1", "T1")
	require.NoError(t, err)
	assert.Equal(t, "TXN-600123", out.ReferenceID)
	assert.Regexp(t, regexp.MustCompile(`^TXN-\d{6}$`), out.ReferenceID)
}

func TestSubmit_WaitsOutLatency(t *testing.T) {
	store := testStore()
	sim := NewSimulator(store, 30*time.Millisecond)

	start := time.Now()
	_, err := sim.Submit("ok@upi", "B1", "T1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
