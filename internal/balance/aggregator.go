// Package balance derives net balances from expenses and their settlement
// state. Everything here is a pure function over its inputs: fully settled
// expenses contribute nothing, payers are credited what they are still owed
// net of reimbursements already received, and debtors are debited their
// outstanding split amounts.
package balance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/divvyhq/divvy/internal/expense"
)

// settledEpsilon is the tolerance below which a net balance counts as
// settled up.
var settledEpsilon = decimal.RequireFromString("0.0001")

// MemberBalance is one member's net position across a set of expenses.
// Positive means the member is owed money, negative means they owe.
type MemberBalance struct {
	MemberID uuid.UUID       `json:"member_id"`
	Net      decimal.Decimal `json:"net"`
}

// Transfer is a suggested payment that reduces outstanding debt.
type Transfer struct {
	From   uuid.UUID       `json:"from"`
	To     uuid.UUID       `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// credit returns what the payer of e is still owed: the tracked total net of
// split amounts already reimbursed. Zero when the expense is fully settled.
func credit(e *expense.Expense) decimal.Decimal {
	if e.IsSettled {
		return decimal.Zero
	}
	reimbursed := decimal.Zero
	for _, s := range e.SettledSplits() {
		reimbursed = reimbursed.Add(s.Amount)
	}
	return e.TotalAmount.Sub(reimbursed)
}

// NetBalance computes a member's signed net position across the given
// expenses: credits for expenses they paid minus debits for their own
// unsettled splits.
func NetBalance(memberID uuid.UUID, expenses []*expense.Expense) decimal.Decimal {
	net := decimal.Zero
	for _, e := range expenses {
		if e.IsSettled {
			continue
		}
		if e.PaidBy == memberID {
			net = net.Add(credit(e))
		}
		if s := e.SplitFor(memberID); s != nil && !s.IsSettled {
			net = net.Sub(s.Amount)
		}
	}
	return net
}

// GroupBalances computes the net position of every member that appears in
// the given expenses, as payer or as split holder. The result is ordered by
// ascending canonical member id.
func GroupBalances(expenses []*expense.Expense) []MemberBalance {
	nets := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range expenses {
		if e.IsSettled {
			continue
		}
		nets[e.PaidBy] = nets[e.PaidBy].Add(credit(e))
		for _, s := range e.UnsettledSplits() {
			nets[s.MemberID] = nets[s.MemberID].Sub(s.Amount)
		}
	}

	balances := make([]MemberBalance, 0, len(nets))
	for id, net := range nets {
		balances = append(balances, MemberBalance{MemberID: id, Net: net})
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].MemberID.String() < balances[j].MemberID.String()
	})
	return balances
}

// IsSettledUp reports whether a net balance is zero within tolerance.
func IsSettledUp(net decimal.Decimal) bool {
	return net.Abs().LessThanOrEqual(settledEpsilon)
}

// SuggestedSettlements greedily matches debtors with creditors to produce a
// short list of transfers that would clear the group's balances. Input order
// does not matter; candidates are walked in canonical member order.
func SuggestedSettlements(balances []MemberBalance) []Transfer {
	var debtors, creditors []MemberBalance
	for _, b := range balances {
		switch {
		case b.Net.LessThan(settledEpsilon.Neg()):
			debtors = append(debtors, MemberBalance{MemberID: b.MemberID, Net: b.Net.Neg()})
		case b.Net.GreaterThan(settledEpsilon):
			creditors = append(creditors, b)
		}
	}
	sort.Slice(debtors, func(i, j int) bool {
		return debtors[i].MemberID.String() < debtors[j].MemberID.String()
	})
	sort.Slice(creditors, func(i, j int) bool {
		return creditors[i].MemberID.String() < creditors[j].MemberID.String()
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].Net, creditors[j].Net)
		if amount.GreaterThan(settledEpsilon) {
			transfers = append(transfers, Transfer{
				From:   debtors[i].MemberID,
				To:     creditors[j].MemberID,
				Amount: amount,
			})
		}

		debtors[i].Net = debtors[i].Net.Sub(amount)
		creditors[j].Net = creditors[j].Net.Sub(amount)

		if debtors[i].Net.LessThanOrEqual(settledEpsilon) {
			i++
		}
		if creditors[j].Net.LessThanOrEqual(settledEpsilon) {
			j++
		}
	}
	return transfers
}
