package balance

import (
	"context"

	"github.com/google/uuid"

	"github.com/divvyhq/divvy/internal/expense"
)

// Service derives balances from the expense store. All computation happens
// in memory over a group's expenses; nothing here mutates state.
type Service struct {
	expenseRepo *expense.Repository
}

// NewService creates a new balance service
func NewService(expenseRepo *expense.Repository) *Service {
	return &Service{expenseRepo: expenseRepo}
}

// GroupBalances computes the net position of every member of a group
func (s *Service) GroupBalances(ctx context.Context, groupID uuid.UUID) ([]MemberBalance, error) {
	expenses, err := s.expenseRepo.ListByGroupWithSplits(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return GroupBalances(expenses), nil
}

// MemberBalance computes one member's net position within a group
func (s *Service) MemberBalance(ctx context.Context, groupID, memberID uuid.UUID) (*MemberBalance, error) {
	expenses, err := s.expenseRepo.ListByGroupWithSplits(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &MemberBalance{MemberID: memberID, Net: NetBalance(memberID, expenses)}, nil
}

// SettleUp suggests a short list of transfers that would clear the group
func (s *Service) SettleUp(ctx context.Context, groupID uuid.UUID) ([]Transfer, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return SuggestedSettlements(balances), nil
}
