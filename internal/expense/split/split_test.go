package split

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed member ids whose canonical strings sort m1 < m2 < m3 < m4, so
// remainder placement is predictable in every test.
var (
	m1 = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	m2 = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	m3 = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	m4 = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sharesPtr(n int64) *int64 {
	return &n
}

func amounts(allocs []Allocation) []string {
	out := make([]string, len(allocs))
	for i, a := range allocs {
		out[i] = a.Amount.String()
	}
	return out
}

func members(allocs []Allocation) []uuid.UUID {
	out := make([]uuid.UUID, len(allocs))
	for i, a := range allocs {
		out[i] = a.MemberID
	}
	return out
}

func sum(allocs []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Amount)
	}
	return total
}

func TestEqualSplit(t *testing.T) {
	s := &EqualStrategy{}

	tests := []struct {
		name         string
		total        string
		minorUnits   int32
		participants []Input
		wantAmounts  []string
	}{
		{
			name:         "ten among three, remainder cent to smallest id",
			total:        "10.00",
			minorUnits:   2,
			participants: []Input{{MemberID: m1}, {MemberID: m2}, {MemberID: m3}},
			wantAmounts:  []string{"3.34", "3.33", "3.33"},
		},
		{
			name:         "thousand yen among three, zero-decimal currency",
			total:        "1000",
			minorUnits:   0,
			participants: []Input{{MemberID: m1}, {MemberID: m2}, {MemberID: m3}},
			wantAmounts:  []string{"334", "333", "333"},
		},
		{
			name:         "three-decimal currency",
			total:        "10.000",
			minorUnits:   3,
			participants: []Input{{MemberID: m1}, {MemberID: m2}, {MemberID: m3}},
			wantAmounts:  []string{"3.334", "3.333", "3.333"},
		},
		{
			name:         "single member gets the full total",
			total:        "10.01",
			minorUnits:   2,
			participants: []Input{{MemberID: m1}},
			wantAmounts:  []string{"10.01"},
		},
		{
			name:         "zero total is an explicit zero per member",
			total:        "0.00",
			minorUnits:   2,
			participants: []Input{{MemberID: m1}, {MemberID: m2}},
			wantAmounts:  []string{"0", "0"},
		},
		{
			name:         "negative total splits as a refund",
			total:        "-10.00",
			minorUnits:   2,
			participants: []Input{{MemberID: m1}, {MemberID: m2}, {MemberID: m3}},
			wantAmounts:  []string{"-3.34", "-3.33", "-3.33"},
		},
		{
			name:         "empty member list",
			total:        "10.00",
			minorUnits:   2,
			participants: nil,
			wantAmounts:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocs := s.Calculate(dec(tt.total), tt.minorUnits, tt.participants)
			assert.Equal(t, tt.wantAmounts, amounts(allocs))
			if len(allocs) > 0 {
				assert.True(t, sum(allocs).Equal(dec(tt.total)),
					"amounts must sum back to the total, got %s", sum(allocs))
			}
		})
	}
}

func TestEqualSplitOutputOrderIsCanonical(t *testing.T) {
	s := &EqualStrategy{}

	// Same members, deliberately shuffled input order.
	first := s.Calculate(dec("10.00"), 2, []Input{{MemberID: m3}, {MemberID: m1}, {MemberID: m2}})
	second := s.Calculate(dec("10.00"), 2, []Input{{MemberID: m2}, {MemberID: m3}, {MemberID: m1}})

	require.Equal(t, first, second)
	assert.Equal(t, []uuid.UUID{m1, m2, m3}, members(first))
}

func TestSharesSplit(t *testing.T) {
	s := &SharesStrategy{}

	tests := []struct {
		name         string
		total        string
		participants []Input
		wantAmounts  []string
	}{
		{
			name:         "two to one",
			total:        "100.00",
			participants: []Input{{MemberID: m1, Shares: sharesPtr(2)}, {MemberID: m2, Shares: sharesPtr(1)}},
			wantAmounts:  []string{"66.67", "33.33"},
		},
		{
			name:         "missing share count defaults to one",
			total:        "30.00",
			participants: []Input{{MemberID: m1, Shares: sharesPtr(2)}, {MemberID: m2}},
			wantAmounts:  []string{"20", "10"},
		},
		{
			name:         "zero-share member owes nothing and takes no remainder",
			total:        "10.00",
			participants: []Input{{MemberID: m1, Shares: sharesPtr(0)}, {MemberID: m2, Shares: sharesPtr(1)}, {MemberID: m3, Shares: sharesPtr(2)}},
			wantAmounts:  []string{"0", "3.34", "6.66"},
		},
		{
			name:         "zero share sum",
			total:        "10.00",
			participants: []Input{{MemberID: m1, Shares: sharesPtr(0)}, {MemberID: m2, Shares: sharesPtr(0)}},
			wantAmounts:  []string{},
		},
		{
			name:         "negative share",
			total:        "10.00",
			participants: []Input{{MemberID: m1, Shares: sharesPtr(-1)}, {MemberID: m2, Shares: sharesPtr(3)}},
			wantAmounts:  []string{},
		},
		{
			name:         "zero total",
			total:        "0.00",
			participants: []Input{{MemberID: m1}, {MemberID: m2}},
			wantAmounts:  []string{},
		},
		{
			name:         "negative total",
			total:        "-5.00",
			participants: []Input{{MemberID: m1}, {MemberID: m2}},
			wantAmounts:  []string{},
		},
		{
			name:         "empty member list",
			total:        "10.00",
			participants: nil,
			wantAmounts:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocs := s.Calculate(dec(tt.total), 2, tt.participants)
			assert.Equal(t, tt.wantAmounts, amounts(allocs))
			if len(allocs) > 0 {
				assert.True(t, sum(allocs).Equal(dec(tt.total)))
			}
		})
	}
}

func TestSharesSplitRemainderPlacement(t *testing.T) {
	s := &SharesStrategy{}

	// 100.00 over 3 equal shares leaves one cent; it lands on the smallest id.
	allocs := s.Calculate(dec("100.00"), 2, []Input{
		{MemberID: m3, Shares: sharesPtr(1)},
		{MemberID: m1, Shares: sharesPtr(1)},
		{MemberID: m2, Shares: sharesPtr(1)},
	})

	require.Len(t, allocs, 3)
	assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amounts(allocs))
	assert.Equal(t, []uuid.UUID{m1, m2, m3}, members(allocs))
}

func TestItemizedSplit(t *testing.T) {
	s := &ItemizedStrategy{}

	tests := []struct {
		name         string
		total        string
		minorUnits   int32
		participants []Input
		wantAmounts  []string
	}{
		{
			name:       "derived fee distributed proportionally",
			total:      "120.00",
			minorUnits: 2,
			participants: []Input{
				{MemberID: m1, ItemizedAmount: decPtr("60.00")},
				{MemberID: m2, ItemizedAmount: decPtr("40.00")},
			},
			wantAmounts: []string{"72", "48"},
		},
		{
			name:       "negative fee acts as a proportional discount",
			total:      "90.00",
			minorUnits: 2,
			participants: []Input{
				{MemberID: m1, ItemizedAmount: decPtr("60.00")},
				{MemberID: m2, ItemizedAmount: decPtr("40.00")},
			},
			wantAmounts: []string{"54", "36"},
		},
		{
			name:       "member with no items pays nothing, fee included",
			total:      "110.00",
			minorUnits: 2,
			participants: []Input{
				{MemberID: m1},
				{MemberID: m2, ItemizedAmount: decPtr("100.00")},
			},
			wantAmounts: []string{"0", "110"},
		},
		{
			name:       "three-decimal currency",
			total:      "10.500",
			minorUnits: 3,
			participants: []Input{
				{MemberID: m1, ItemizedAmount: decPtr("3.000")},
				{MemberID: m2, ItemizedAmount: decPtr("7.000")},
			},
			wantAmounts: []string{"3.15", "7.35"},
		},
		{
			name:       "negative itemized subtotal",
			total:      "50.00",
			minorUnits: 2,
			participants: []Input{
				{MemberID: m1, ItemizedAmount: decPtr("-10.00")},
				{MemberID: m2, ItemizedAmount: decPtr("60.00")},
			},
			wantAmounts: []string{},
		},
		{
			name:       "zero itemized sum",
			total:      "50.00",
			minorUnits: 2,
			participants: []Input{
				{MemberID: m1, ItemizedAmount: decPtr("0")},
				{MemberID: m2},
			},
			wantAmounts: []string{},
		},
		{
			name:         "empty member list",
			total:        "50.00",
			minorUnits:   2,
			participants: nil,
			wantAmounts:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocs := s.Calculate(dec(tt.total), tt.minorUnits, tt.participants)
			assert.Equal(t, tt.wantAmounts, amounts(allocs))
			if len(allocs) > 0 {
				assert.True(t, sum(allocs).Equal(dec(tt.total)),
					"amounts must sum back to the total, got %s", sum(allocs))
			}
		})
	}
}

func TestItemizedSplitRemainderSkipsZeroWeight(t *testing.T) {
	s := &ItemizedStrategy{}

	// m1 ordered nothing; the fee remainder cent must land on m2 even though
	// m1 sorts first.
	allocs := s.Calculate(dec("10.00"), 2, []Input{
		{MemberID: m1},
		{MemberID: m2, ItemizedAmount: decPtr("3.00")},
		{MemberID: m3, ItemizedAmount: decPtr("6.00")},
	})

	require.Len(t, allocs, 3)
	assert.Equal(t, "0", allocs[0].Amount.String())
	assert.Equal(t, "3.34", allocs[1].Amount.String())
	assert.Equal(t, "6.66", allocs[2].Amount.String())
	assert.True(t, sum(allocs).Equal(dec("10.00")))
}

func TestAdjustmentOverlay(t *testing.T) {
	base := &EqualStrategy{}

	t.Run("delta shifts one member and the tracked total", func(t *testing.T) {
		adj := NewAdjustmentStrategy(base, map[uuid.UUID]decimal.Decimal{
			m1: dec("10.00"),
		})

		allocs := adj.Calculate(dec("100.00"), 2, []Input{{MemberID: m1}, {MemberID: m2}})
		require.Len(t, allocs, 2)
		assert.Equal(t, "60", allocs[0].Amount.String())
		assert.Equal(t, "50", allocs[1].Amount.String())

		tracked := adj.TrackedTotal(dec("100.00"), 2)
		assert.Equal(t, "110", tracked.String())
		assert.True(t, sum(allocs).Equal(tracked),
			"conservation holds against the adjusted total, not the original")
	})

	t.Run("unlisted members default to a zero delta", func(t *testing.T) {
		adj := NewAdjustmentStrategy(base, map[uuid.UUID]decimal.Decimal{
			m3: dec("-2.50"),
		})

		allocs := adj.Calculate(dec("30.00"), 2, []Input{{MemberID: m1}, {MemberID: m2}, {MemberID: m3}})
		require.Len(t, allocs, 3)
		assert.Equal(t, []string{"10", "10", "7.5"}, amounts(allocs))
		assert.True(t, sum(allocs).Equal(adj.TrackedTotal(dec("30.00"), 2)))
	})

	t.Run("empty base result stays empty", func(t *testing.T) {
		adj := NewAdjustmentStrategy(&SharesStrategy{}, map[uuid.UUID]decimal.Decimal{
			m1: dec("5.00"),
		})

		allocs := adj.Calculate(dec("0.00"), 2, []Input{{MemberID: m1}})
		assert.Empty(t, allocs)
	})

	t.Run("type reports the base strategy", func(t *testing.T) {
		adj := NewAdjustmentStrategy(base, nil)
		assert.Equal(t, TypeEqual, adj.Type())
	})
}

func TestStrategiesAreDeterministic(t *testing.T) {
	factory := NewStrategyFactory()

	participants := []Input{
		{MemberID: m4, Shares: sharesPtr(3), ItemizedAmount: decPtr("12.34")},
		{MemberID: m2, Shares: sharesPtr(1), ItemizedAmount: decPtr("0.01")},
		{MemberID: m1, Shares: sharesPtr(2), ItemizedAmount: decPtr("7.77")},
		{MemberID: m3, Shares: sharesPtr(5), ItemizedAmount: decPtr("55.55")},
	}
	shuffled := []Input{participants[2], participants[0], participants[3], participants[1]}

	for _, typ := range []Type{TypeEqual, TypeShares, TypeItemized} {
		t.Run(string(typ), func(t *testing.T) {
			s, err := factory.Create(typ)
			require.NoError(t, err)

			first := s.Calculate(dec("123.45"), 2, participants)
			second := s.Calculate(dec("123.45"), 2, shuffled)
			assert.Equal(t, first, second,
				"identical inputs in any order must produce identical output")
			assert.Equal(t, []uuid.UUID{m1, m2, m3, m4}, members(first))
		})
	}
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	factory := NewStrategyFactory()

	_, err := factory.CreateFromString("PERCENTAGE")
	assert.Error(t, err)

	s, err := factory.CreateFromString("SHARES")
	require.NoError(t, err)
	assert.Equal(t, TypeShares, s.Type())
}
