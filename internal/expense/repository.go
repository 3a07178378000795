package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense and its splits in one transaction.
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (id, group_id, description, date, total_amount, currency_code, paid_by, involved, split_type, is_settled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, expenseQuery,
		e.ID,
		e.GroupID,
		e.Description,
		e.Date,
		e.TotalAmount,
		e.CurrencyCode,
		e.PaidBy,
		pq.Array(uuidStrings(e.Involved)),
		e.SplitType,
		e.IsSettled,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO splits (id, expense_id, member_id, amount, is_settled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING updated_at
	`
	for _, s := range e.Splits {
		if err := tx.QueryRowContext(ctx, splitQuery, s.ID, s.ExpenseID, s.MemberID, s.Amount, s.IsSettled).Scan(&s.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense with its splits
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT id, group_id, description, date, total_amount, currency_code, paid_by, involved, split_type, is_settled, created_at
		FROM expenses
		WHERE id = $1
	`

	e := &Expense{}
	var involved pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.GroupID,
		&e.Description,
		&e.Date,
		&e.TotalAmount,
		&e.CurrencyCode,
		&e.PaidBy,
		&involved,
		&e.SplitType,
		&e.IsSettled,
		&e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if e.Involved, err = parseUUIDs(involved); err != nil {
		return nil, fmt.Errorf("failed to parse involved members: %w", err)
	}
	if e.Splits, err = r.getSplits(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// getSplits retrieves the splits of an expense in canonical member order
func (r *Repository) getSplits(ctx context.Context, expenseID uuid.UUID) ([]*Split, error) {
	query := `
		SELECT id, expense_id, member_id, amount, is_settled, updated_at
		FROM splits
		WHERE expense_id = $1
		ORDER BY member_id::text
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.MemberID, &s.Amount, &s.IsSettled, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}
	return splits, nil
}

// ListByGroup retrieves a page of a group's expenses without their splits
func (r *Repository) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, group_id, description, date, total_amount, currency_code, paid_by, involved, split_type, is_settled, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListByGroupWithSplits retrieves all of a group's expenses including splits,
// for balance aggregation.
func (r *Repository) ListByGroupWithSplits(ctx context.Context, groupID uuid.UUID) ([]*Expense, error) {
	query := `
		SELECT id, group_id, description, date, total_amount, currency_code, paid_by, involved, split_type, is_settled, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY date, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}

	for _, e := range expenses {
		if e.Splits, err = r.getSplits(ctx, e.ID); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// SettleSplit marks one member's split settled and recomputes the expense
// flag. Both updates run as single statements so concurrent settlement
// operations on the same expense serialize at the database.
func (r *Repository) SettleSplit(ctx context.Context, expenseID, memberID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE splits SET is_settled = TRUE, updated_at = NOW() WHERE expense_id = $1 AND member_id = $2`,
		expenseID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle split: %w", err)
	}
	return r.recomputeSettled(ctx, expenseID)
}

// SettleAll marks every split of the expense settled
func (r *Repository) SettleAll(ctx context.Context, expenseID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE splits SET is_settled = TRUE, updated_at = NOW() WHERE expense_id = $1 AND NOT is_settled`,
		expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle splits: %w", err)
	}
	return r.recomputeSettled(ctx, expenseID)
}

// recomputeSettled derives the expense flag as the conjunction of its split
// flags, vacuously true with zero splits.
func (r *Repository) recomputeSettled(ctx context.Context, expenseID uuid.UUID) error {
	query := `
		UPDATE expenses
		SET is_settled = NOT EXISTS (
			SELECT 1 FROM splits WHERE expense_id = $1 AND NOT is_settled
		)
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, expenseID); err != nil {
		return fmt.Errorf("failed to recompute settled flag: %w", err)
	}
	return nil
}

// Delete removes an expense and its splits. Deletion is never gated on
// settlement state.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func scanExpenses(rows *sql.Rows) ([]*Expense, error) {
	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		var involved pq.StringArray
		err := rows.Scan(
			&e.ID,
			&e.GroupID,
			&e.Description,
			&e.Date,
			&e.TotalAmount,
			&e.CurrencyCode,
			&e.PaidBy,
			&involved,
			&e.SplitType,
			&e.IsSettled,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Involved, err = parseUUIDs(involved); err != nil {
			return nil, fmt.Errorf("failed to parse involved members: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
