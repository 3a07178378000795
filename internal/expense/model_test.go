package expense

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	mB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	mC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func newExpense(amounts map[uuid.UUID]string) *Expense {
	e := &Expense{ID: uuid.New()}
	total := decimal.Zero
	for memberID, amount := range amounts {
		a := decimal.RequireFromString(amount)
		e.Splits = append(e.Splits, &Split{
			ID:        uuid.New(),
			ExpenseID: e.ID,
			MemberID:  memberID,
			Amount:    a,
		})
		e.Involved = append(e.Involved, memberID)
		total = total.Add(a)
	}
	e.TotalAmount = total
	e.IsSettled = e.allSplitsSettled()
	return e
}

func TestMarkSettledProgression(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "10.00", mB: "10.00", mC: "10.00"})

	e.MarkSettled(mA)
	e.MarkSettled(mB)
	assert.False(t, e.IsSettled)
	assert.Len(t, e.UnsettledSplits(), 1)
	assert.Len(t, e.SettledSplits(), 2)

	e.MarkSettled(mC)
	assert.True(t, e.IsSettled)
	assert.Empty(t, e.UnsettledSplits())
}

func TestMarkSettledIsOneWayAndIdempotent(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "5.00", mB: "5.00"})

	e.MarkSettled(mA)
	require.True(t, e.IsMemberSettled(mA))

	// Further operations never flip a settled split back.
	e.MarkSettled(mA)
	e.MarkSettled(mB)
	e.MarkSettled(uuid.New())
	assert.True(t, e.IsMemberSettled(mA))
	assert.True(t, e.IsSettled)
}

func TestMarkSettledUnknownMemberIsNoOp(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "5.00"})

	e.MarkSettled(mB)
	assert.False(t, e.IsSettled)
	assert.False(t, e.IsMemberSettled(mB))
	assert.Len(t, e.UnsettledSplits(), 1)
}

func TestMarkAllSettled(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "1.00", mB: "2.00", mC: "3.00"})

	e.MarkAllSettled()
	assert.True(t, e.IsSettled)
	assert.Len(t, e.SettledSplits(), 3)
	assert.Empty(t, e.UnsettledSplits())
}

func TestZeroSplitsIsVacuouslySettled(t *testing.T) {
	e := &Expense{ID: uuid.New()}
	e.IsSettled = e.allSplitsSettled()
	assert.True(t, e.IsSettled)
}

func TestSplitForAndIsMemberSettled(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "7.50"})

	require.NotNil(t, e.SplitFor(mA))
	assert.Nil(t, e.SplitFor(mB), "absence is nil, not an error")

	assert.False(t, e.IsMemberSettled(mA))
	assert.False(t, e.IsMemberSettled(mB), "absent member is simply not settled")

	e.MarkSettled(mA)
	assert.True(t, e.IsMemberSettled(mA))
}

func TestFilteredViewsReflectLiveState(t *testing.T) {
	e := newExpense(map[uuid.UUID]string{mA: "4.00", mB: "6.00"})

	before := e.UnsettledSplits()
	require.Len(t, before, 2)

	e.MarkSettled(mA)
	assert.Len(t, e.UnsettledSplits(), 1)
	assert.Equal(t, mB, e.UnsettledSplits()[0].MemberID)
}
