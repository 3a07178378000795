package split

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ADJUSTMENT OVERLAY
// Adds signed per-member deltas on top of any base strategy's allocation
// =============================================================================

// AdjustmentStrategy decorates a base strategy with an additive per-member
// overlay. Members without an adjustment default to a zero delta. The sum of
// the resulting allocations intentionally diverges from the original total
// by the sum of all adjustments; TrackedTotal reports the adjusted quantity
// that conservation holds against.
type AdjustmentStrategy struct {
	base   Strategy
	deltas map[uuid.UUID]decimal.Decimal
}

// NewAdjustmentStrategy wraps base with the given per-member deltas.
func NewAdjustmentStrategy(base Strategy, deltas map[uuid.UUID]decimal.Decimal) *AdjustmentStrategy {
	return &AdjustmentStrategy{base: base, deltas: deltas}
}

// Type returns the base strategy's type identifier; the overlay is a
// modifier, not a strategy of its own.
func (s *AdjustmentStrategy) Type() Type {
	return s.base.Type()
}

// TrackedTotal returns the total the adjusted allocations sum to:
// the original total plus the sum of all adjustments.
func (s *AdjustmentStrategy) TrackedTotal(total decimal.Decimal, minorUnits int32) decimal.Decimal {
	adjusted := toMinorUnits(total, minorUnits)
	for _, d := range s.deltas {
		adjusted += toMinorUnits(d, minorUnits)
	}
	return fromMinorUnits(adjusted, minorUnits)
}

// Calculate runs the base strategy, then adds each member's delta to their
// base amount. An empty base result stays empty: there is no allocation to
// adjust. Deltas for members outside the base allocation are ignored.
func (s *AdjustmentStrategy) Calculate(total decimal.Decimal, minorUnits int32, participants []Input) []Allocation {
	allocs := s.base.Calculate(total, minorUnits, participants)
	if len(allocs) == 0 || len(s.deltas) == 0 {
		return allocs
	}

	for i := range allocs {
		delta, ok := s.deltas[allocs[i].MemberID]
		if !ok {
			continue
		}
		units := toMinorUnits(allocs[i].Amount, minorUnits) + toMinorUnits(delta, minorUnits)
		allocs[i].Amount = fromMinorUnits(units, minorUnits)
	}
	return allocs
}
