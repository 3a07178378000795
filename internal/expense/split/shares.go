package split

import "github.com/shopspring/decimal"

// =============================================================================
// SHARES SPLIT STRATEGY
// Divides the total in proportion to integer share counts
// =============================================================================

// SharesStrategy implements the Strategy interface for share-weighted splits.
type SharesStrategy struct{}

// Type returns the split type identifier.
func (s *SharesStrategy) Type() Type {
	return TypeShares
}

// Calculate divides the total in proportion to each participant's share
// count. Participants without an explicit share count default to one share.
// A non-positive total, a negative share, or a non-positive share sum leaves
// the allocation undefined and yields an empty result.
func (s *SharesStrategy) Calculate(total decimal.Decimal, minorUnits int32, participants []Input) []Allocation {
	if len(participants) == 0 || total.Sign() <= 0 {
		return []Allocation{}
	}

	entries := make([]minorAllocation, len(participants))
	var shareSum int64
	for i, p := range participants {
		shares := int64(1)
		if p.Shares != nil {
			shares = *p.Shares
		}
		if shares < 0 {
			return []Allocation{}
		}
		entries[i] = minorAllocation{memberID: p.MemberID, weight: shares}
		shareSum += shares
	}
	if shareSum <= 0 {
		return []Allocation{}
	}

	totalMinor := toMinorUnits(total, minorUnits)
	return toAllocations(apportion(totalMinor, entries), minorUnits)
}
