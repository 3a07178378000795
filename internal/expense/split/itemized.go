package split

import "github.com/shopspring/decimal"

// =============================================================================
// ITEMIZED SPLIT STRATEGY
// Each participant has an itemized subtotal; the delta between the expense
// total and the sum of subtotals (tax, tip, surcharge, or a discount when
// negative) is distributed in proportion to those subtotals
// =============================================================================

// ItemizedStrategy implements the Strategy interface for itemized splits
// with derived fees.
type ItemizedStrategy struct{}

// Type returns the split type identifier.
func (s *ItemizedStrategy) Type() Type {
	return TypeItemized
}

// Calculate assigns each participant their own itemized subtotal plus a
// proportional slice of the derived fee (total minus the sum of subtotals).
// Participants without an itemized amount default to zero and receive
// nothing, fee included. A negative subtotal or a zero subtotal sum leaves
// the proportional distribution undefined and yields an empty result.
func (s *ItemizedStrategy) Calculate(total decimal.Decimal, minorUnits int32, participants []Input) []Allocation {
	if len(participants) == 0 {
		return []Allocation{}
	}

	entries := make([]minorAllocation, len(participants))
	var itemSum int64
	for i, p := range participants {
		var itemized int64
		if p.ItemizedAmount != nil {
			itemized = toMinorUnits(*p.ItemizedAmount, minorUnits)
		}
		if itemized < 0 {
			return []Allocation{}
		}
		entries[i] = minorAllocation{memberID: p.MemberID, weight: itemized}
		itemSum += itemized
	}
	if itemSum == 0 {
		return []Allocation{}
	}

	sortByMemberID(entries)

	totalMinor := toMinorUnits(total, minorUnits)
	fee := totalMinor - itemSum
	feeDec := decimal.NewFromInt(fee)
	itemSumDec := decimal.NewFromInt(itemSum)

	var distributed int64
	for i := range entries {
		// Exact truncated fee share, proportional to this member's subtotal.
		q, _ := decimal.NewFromInt(entries[i].weight).Mul(feeDec).QuoRem(itemSumDec, 0)
		entries[i].units = entries[i].weight + q.IntPart()
		distributed += entries[i].units
	}

	spreadRemainder(entries, totalMinor-distributed)
	return toAllocations(entries, minorUnits)
}
