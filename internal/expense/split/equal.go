package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the total equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits.
type EqualStrategy struct{}

// Type returns the split type identifier.
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Calculate divides the total evenly among all participants. A zero total
// produces an explicit zero allocation per member; a single participant gets
// the full total exactly. Negative totals (refunds) split the same way and
// yield negative shares.
func (s *EqualStrategy) Calculate(total decimal.Decimal, minorUnits int32, participants []Input) []Allocation {
	if len(participants) == 0 {
		return []Allocation{}
	}

	entries := make([]minorAllocation, len(participants))
	for i, p := range participants {
		entries[i] = minorAllocation{memberID: p.MemberID, weight: 1}
	}

	totalMinor := toMinorUnits(total, minorUnits)
	return toAllocations(apportion(totalMinor, entries), minorUnits)
}
