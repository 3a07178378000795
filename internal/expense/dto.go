package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/expense/split"
)

// Participant is one member's entry when creating an expense. Strategy
// values are optional and default per strategy: one share for SHARES, a
// zero subtotal for ITEMIZED.
type Participant struct {
	MemberID       uuid.UUID        `json:"member_id" validate:"required"`
	Shares         *int64           `json:"shares,omitempty"`
	ItemizedAmount *decimal.Decimal `json:"itemized_amount,omitempty"`
}

// ToSplitInput converts to the split package's input type
func (p *Participant) ToSplitInput() split.Input {
	return split.Input{
		MemberID:       p.MemberID,
		Shares:         p.Shares,
		ItemizedAmount: p.ItemizedAmount,
	}
}

// Adjustment is a signed delta overlaid on one member's base allocation.
type Adjustment struct {
	MemberID uuid.UUID       `json:"member_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
}

// CreateExpenseRequest represents the request to create an expense.
// TotalAmount may be omitted for ITEMIZED splits when tax/tip are given
// explicitly; the total is then the itemized sum plus tax plus tip.
type CreateExpenseRequest struct {
	GroupID      uuid.UUID        `json:"group_id" validate:"required"`
	Description  string           `json:"description" validate:"required,min=1,max=255"`
	Date         *time.Time       `json:"date,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	CurrencyCode string           `json:"currency_code" validate:"required,len=3"`
	PaidBy       uuid.UUID        `json:"paid_by" validate:"required"`
	SplitType    string           `json:"split_type" validate:"required,oneof=EQUAL SHARES ITEMIZED"`
	Participants []*Participant   `json:"participants" validate:"required,min=1"`
	Adjustments  []*Adjustment    `json:"adjustments,omitempty"`
	TaxAmount    *decimal.Decimal `json:"tax_amount,omitempty"`
	TipAmount    *decimal.Decimal `json:"tip_amount,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID             uuid.UUID        `json:"id"`
	GroupID        uuid.UUID        `json:"group_id"`
	Description    string           `json:"description"`
	Date           string           `json:"date"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	CurrencyCode   string           `json:"currency_code"`
	CurrencySymbol string           `json:"currency_symbol"`
	PaidBy         uuid.UUID        `json:"paid_by"`
	Involved       []uuid.UUID      `json:"involved_member_ids"`
	SplitType      string           `json:"split_type"`
	IsSettled      bool             `json:"is_settled"`
	Splits         []*SplitResponse `json:"splits,omitempty"`
	CreatedAt      string           `json:"created_at"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID        uuid.UUID       `json:"id"`
	ExpenseID uuid.UUID       `json:"expense_id"`
	MemberID  uuid.UUID       `json:"member_id"`
	Amount    decimal.Decimal `json:"amount"`
	IsSettled bool            `json:"is_settled"`
	UpdatedAt string          `json:"updated_at"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Date:           e.Date.Format("2006-01-02"),
		TotalAmount:    e.TotalAmount,
		CurrencyCode:   e.CurrencyCode,
		CurrencySymbol: currency.Symbol(e.CurrencyCode),
		PaidBy:         e.PaidBy,
		Involved:       e.Involved,
		SplitType:      e.SplitType,
		IsSettled:      e.IsSettled,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if len(e.Splits) > 0 {
		resp.Splits = make([]*SplitResponse, len(e.Splits))
		for i, s := range e.Splits {
			resp.Splits[i] = s.ToResponse()
		}
	}
	return resp
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		MemberID:  s.MemberID,
		Amount:    s.Amount,
		IsSettled: s.IsSettled,
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}
