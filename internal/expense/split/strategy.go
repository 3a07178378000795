package split

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual    Type = "EQUAL"
	TypeShares   Type = "SHARES"
	TypeItemized Type = "ITEMIZED"
)

// Input represents one participant in a split with optional strategy values.
// Missing values fall back to defaults: one share for SHARES, a zero itemized
// subtotal for ITEMIZED.
type Input struct {
	MemberID       uuid.UUID        `json:"member_id"`
	Shares         *int64           `json:"shares,omitempty"`          // For SHARES split
	ItemizedAmount *decimal.Decimal `json:"itemized_amount,omitempty"` // For ITEMIZED split
}

// Allocation is the calculated share for a single member.
type Allocation struct {
	MemberID uuid.UUID       `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// Strategy is the interface all split strategies implement.
//
// Calculate is pure and safe for concurrent use. Undefined-allocation inputs
// (no participants, non-positive share sums, zero itemized sums) produce an
// empty result rather than an error; callers decide whether an empty result
// is worth persisting. The returned allocations are always ordered by the
// ascending canonical string form of the member id, regardless of the order
// participants were supplied in, and sum back to the total to the last minor
// unit.
type Strategy interface {
	// Calculate computes each participant's share of total at the given
	// minor-unit precision.
	Calculate(total decimal.Decimal, minorUnits int32, participants []Input) []Allocation

	// Type returns the type identifier for this strategy.
	Type() Type
}

// Factory creates split strategies based on the requested type.
type Factory struct{}

// NewStrategyFactory creates a new factory instance.
func NewStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeShares:
		return &SharesStrategy{}, nil
	case TypeItemized:
		return &ItemizedStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests).
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}
