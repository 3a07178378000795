package expense

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/divvyhq/divvy/internal/expense/split"
)

func createRequest() *CreateExpenseRequest {
	total := decimal.RequireFromString("100.00")
	return &CreateExpenseRequest{
		GroupID:      uuid.New(),
		Description:  "dinner",
		TotalAmount:  &total,
		CurrencyCode: "USD",
		PaidBy:       mA,
		SplitType:    "EQUAL",
		Participants: []*Participant{{MemberID: mA}, {MemberID: mB}},
	}
}

func TestCreateExpenseRejectsDuplicateParticipant(t *testing.T) {
	svc := NewService(nil, split.NewStrategyFactory())

	req := createRequest()
	req.Participants = append(req.Participants, &Participant{MemberID: mA})

	_, err := svc.CreateExpense(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

func TestCreateExpenseRejectsAdjustmentForNonParticipant(t *testing.T) {
	svc := NewService(nil, split.NewStrategyFactory())

	// A delta for a member with no split would never be applied, so the
	// stored total would exceed what the splits sum to. Reject it up front.
	req := createRequest()
	req.Adjustments = []*Adjustment{
		{MemberID: uuid.New(), Amount: decimal.RequireFromString("10.00")},
	}

	_, err := svc.CreateExpense(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownAdjustment)
}

func TestCreateExpenseRejectsMissingTotal(t *testing.T) {
	svc := NewService(nil, split.NewStrategyFactory())

	req := createRequest()
	req.TotalAmount = nil

	_, err := svc.CreateExpense(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingTotal)
}
