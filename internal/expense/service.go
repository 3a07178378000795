package expense

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrNoSplits             = errors.New("no splits produced for the given inputs")
	ErrMissingTotal         = errors.New("total amount is required")
	ErrDuplicateParticipant = errors.New("duplicate participant member id")
	ErrUnknownAdjustment    = errors.New("adjustment references a non-participant member")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
	}
}

// CreateExpense calculates the splits for the requested strategy and
// persists the expense together with them. Strategy guard conditions (empty
// allocations) surface as ErrNoSplits so nothing half-defined is stored.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if err := validateParticipants(req.Participants); err != nil {
		return nil, err
	}
	if err := validateAdjustments(req.Participants, req.Adjustments); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	minorUnits := currency.MinorUnits(req.CurrencyCode)
	total, err := resolveTotal(req, minorUnits)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.Input, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitInput()
	}

	trackedTotal := total.Round(minorUnits)
	if len(req.Adjustments) > 0 {
		deltas := make(map[uuid.UUID]decimal.Decimal, len(req.Adjustments))
		for _, a := range req.Adjustments {
			deltas[a.MemberID] = deltas[a.MemberID].Add(a.Amount)
		}
		adjusted := split.NewAdjustmentStrategy(strategy, deltas)
		trackedTotal = adjusted.TrackedTotal(total, minorUnits)
		strategy = adjusted
	}

	allocations := strategy.Calculate(total, minorUnits, inputs)
	if len(allocations) == 0 {
		return nil, ErrNoSplits
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	e := &Expense{
		ID:           uuid.New(),
		GroupID:      req.GroupID,
		Description:  req.Description,
		Date:         date,
		TotalAmount:  trackedTotal,
		CurrencyCode: req.CurrencyCode,
		PaidBy:       req.PaidBy,
		SplitType:    string(strategy.Type()),
	}
	e.Involved = make([]uuid.UUID, len(allocations))
	e.Splits = make([]*Split, len(allocations))
	for i, a := range allocations {
		e.Involved[i] = a.MemberID
		e.Splits[i] = &Split{
			ID:        uuid.New(),
			ExpenseID: e.ID,
			MemberID:  a.MemberID,
			Amount:    a.Amount,
		}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		slog.Error("create expense failed", "group_id", req.GroupID, "error", err)
		return nil, err
	}
	return e, nil
}

// resolveTotal returns the expense total. For ITEMIZED splits the total may
// be derived from the itemized sum plus explicit tax and tip amounts; those
// are a convenience parameterization of the derived-fee formula, not a
// separate algorithm.
func resolveTotal(req *CreateExpenseRequest, minorUnits int32) (decimal.Decimal, error) {
	if req.TotalAmount != nil {
		return *req.TotalAmount, nil
	}
	if split.Type(req.SplitType) != split.TypeItemized {
		return decimal.Zero, ErrMissingTotal
	}

	total := decimal.Zero
	for _, p := range req.Participants {
		if p.ItemizedAmount != nil {
			total = total.Add(*p.ItemizedAmount)
		}
	}
	if req.TaxAmount != nil {
		total = total.Add(*req.TaxAmount)
	}
	if req.TipAmount != nil {
		total = total.Add(*req.TipAmount)
	}
	return total.Round(minorUnits), nil
}

// validateParticipants rejects duplicate member ids: an expense carries at
// most one split per member.
func validateParticipants(participants []*Participant) error {
	seen := make(map[uuid.UUID]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p.MemberID]; dup {
			return ErrDuplicateParticipant
		}
		seen[p.MemberID] = struct{}{}
	}
	return nil
}

// validateAdjustments rejects adjustments naming members outside the
// participant list. Every delta must land on an allocated split, otherwise
// the tracked total would diverge from the sum of the stored splits.
func validateAdjustments(participants []*Participant, adjustments []*Adjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	allowed := make(map[uuid.UUID]struct{}, len(participants))
	for _, p := range participants {
		allowed[p.MemberID] = struct{}{}
	}
	for _, a := range adjustments {
		if _, ok := allowed[a.MemberID]; !ok {
			return ErrUnknownAdjustment
		}
	}
	return nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// ListExpensesByGroupID retrieves a page of expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroup(ctx, groupID, perPage, offset)
}

// SettleSplit marks one member's share of an expense as reimbursed. A
// member without a split on the expense is a no-op, not an error; the
// expense is returned with its recomputed settlement state either way.
func (s *Service) SettleSplit(ctx context.Context, expenseID, memberID uuid.UUID) (*Expense, error) {
	e, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SettleSplit(ctx, expenseID, memberID); err != nil {
		slog.Error("settle split failed", "expense_id", expenseID, "member_id", memberID, "error", err)
		return nil, err
	}

	e.MarkSettled(memberID)
	return e, nil
}

// SettleExpense marks every split of an expense as reimbursed, used when
// the payer declares the whole expense reconciled.
func (s *Service) SettleExpense(ctx context.Context, expenseID uuid.UUID) (*Expense, error) {
	e, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SettleAll(ctx, expenseID); err != nil {
		slog.Error("settle expense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	e.MarkAllSettled()
	return e, nil
}

// DeleteExpense removes an expense regardless of its settlement state.
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
