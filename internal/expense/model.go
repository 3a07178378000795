package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a shared cost split among a group of members. The
// expense exclusively owns its splits: amounts are fixed at creation and
// only the settled flags change afterwards.
type Expense struct {
	ID           uuid.UUID       `json:"id"`
	GroupID      uuid.UUID       `json:"group_id"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	TotalAmount  decimal.Decimal `json:"total_amount"` // tracked total; includes adjustments
	CurrencyCode string          `json:"currency_code"`
	PaidBy       uuid.UUID       `json:"paid_by"`
	Involved     []uuid.UUID     `json:"involved_member_ids"`
	Splits       []*Split        `json:"splits"`
	IsSettled    bool            `json:"is_settled"`
	SplitType    string          `json:"split_type"` // EQUAL, SHARES, ITEMIZED
	CreatedAt    time.Time       `json:"created_at"`
}

// Split is one member's allocated share of an expense. At most one split
// exists per member on a given expense.
type Split struct {
	ID        uuid.UUID       `json:"id"`
	ExpenseID uuid.UUID       `json:"expense_id"`
	MemberID  uuid.UUID       `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"` // signed; negative for refunds
	IsSettled bool            `json:"is_settled"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SplitFor returns the split belonging to the given member, or nil when the
// member has no split on this expense.
func (e *Expense) SplitFor(memberID uuid.UUID) *Split {
	for _, s := range e.Splits {
		if s.MemberID == memberID {
			return s
		}
	}
	return nil
}

// IsMemberSettled reports whether the given member's share is settled.
// A member with no split on this expense is simply not settled; absence is
// never an error.
func (e *Expense) IsMemberSettled(memberID uuid.UUID) bool {
	s := e.SplitFor(memberID)
	return s != nil && s.IsSettled
}

// SettledSplits returns the splits that have been reimbursed. The view is
// computed from live state on every call.
func (e *Expense) SettledSplits() []*Split {
	settled := make([]*Split, 0, len(e.Splits))
	for _, s := range e.Splits {
		if s.IsSettled {
			settled = append(settled, s)
		}
	}
	return settled
}

// UnsettledSplits returns the splits still awaiting reimbursement.
func (e *Expense) UnsettledSplits() []*Split {
	unsettled := make([]*Split, 0, len(e.Splits))
	for _, s := range e.Splits {
		if !s.IsSettled {
			unsettled = append(unsettled, s)
		}
	}
	return unsettled
}

// MarkSettled flips the given member's split to settled and recomputes the
// expense-level flag. Settling is one-way; there is no unsettle operation.
// A member without a split is a no-op.
func (e *Expense) MarkSettled(memberID uuid.UUID) {
	s := e.SplitFor(memberID)
	if s == nil {
		return
	}
	s.IsSettled = true
	e.IsSettled = e.allSplitsSettled()
}

// MarkAllSettled settles every split at once, used when the payer declares
// the whole expense reconciled regardless of individual confirmations.
func (e *Expense) MarkAllSettled() {
	for _, s := range e.Splits {
		s.IsSettled = true
	}
	e.IsSettled = true
}

// allSplitsSettled is the conjunction of all split flags, vacuously true
// when there are no splits.
func (e *Expense) allSplitsSettled() bool {
	for _, s := range e.Splits {
		if !s.IsSettled {
			return false
		}
	}
	return true
}
