package split

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// All strategy arithmetic happens in integer minor units: the total is
// converted once on the way in, each ideal share is computed exactly and
// truncated toward zero, and the leftover minor units are handed out
// deterministically before converting back. Rounding can therefore never
// create or destroy a minor unit.

// minorAllocation is one member's share while still in integer minor units.
type minorAllocation struct {
	memberID uuid.UUID
	weight   int64
	units    int64
}

// toMinorUnits converts an amount to integer minor units at the given
// precision. Inputs carrying more precision than the currency supports are
// rounded half away from zero once, before any distribution happens.
func toMinorUnits(amount decimal.Decimal, minorUnits int32) int64 {
	return amount.Shift(minorUnits).Round(0).IntPart()
}

// fromMinorUnits converts integer minor units back to a decimal amount.
func fromMinorUnits(units int64, minorUnits int32) decimal.Decimal {
	return decimal.New(units, -minorUnits)
}

// sortByMemberID orders allocations by the ascending canonical string form
// of the member id. This ordering is the deterministic tie-break for
// remainder distribution and the canonical output order of every strategy;
// it never depends on the order the caller supplied participants in.
func sortByMemberID(allocs []minorAllocation) {
	sort.Slice(allocs, func(i, j int) bool {
		return allocs[i].memberID.String() < allocs[j].memberID.String()
	})
}

// apportion splits totalMinor units across the entries in proportion to
// their weights. weightSum must be positive for the truncation bound to
// hold; callers guard that. Entries are returned in canonical member order.
func apportion(totalMinor int64, entries []minorAllocation) []minorAllocation {
	sortByMemberID(entries)

	var weightSum int64
	for _, e := range entries {
		weightSum += e.weight
	}

	totalDec := decimal.NewFromInt(totalMinor)
	sumDec := decimal.NewFromInt(weightSum)

	var distributed int64
	for i := range entries {
		// Exact truncated quotient: no intermediate rounding.
		q, _ := totalDec.Mul(decimal.NewFromInt(entries[i].weight)).QuoRem(sumDec, 0)
		entries[i].units = q.IntPart()
		distributed += entries[i].units
	}

	spreadRemainder(entries, totalMinor-distributed)
	return entries
}

// spreadRemainder hands out the leftover minor units one at a time, signed
// like the remainder, to the entries with the lexicographically smallest
// member ids. Zero-weight entries never receive remainder units: a member
// who carries no weight in the distribution owes exactly zero.
func spreadRemainder(allocs []minorAllocation, remainder int64) {
	step := int64(1)
	if remainder < 0 {
		step = -1
		remainder = -remainder
	}
	for i := 0; i < len(allocs) && remainder > 0; i++ {
		if allocs[i].weight == 0 {
			continue
		}
		allocs[i].units += step
		remainder--
	}
}

// toAllocations converts minor-unit allocations back to decimal amounts.
func toAllocations(allocs []minorAllocation, minorUnits int32) []Allocation {
	out := make([]Allocation, len(allocs))
	for i, a := range allocs {
		out[i] = Allocation{
			MemberID: a.memberID,
			Amount:   fromMinorUnits(a.units, minorUnits),
		}
	}
	return out
}
