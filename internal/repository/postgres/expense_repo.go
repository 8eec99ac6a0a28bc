package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `id::text, owner_id, title, amount, category, spent_on, created_at, updated_at`

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense. The caller assigns the ID.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	amount, err := floatToPgNumeric(expense.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (id, owner_id, title, amount, category, spent_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+expenseColumns,
		expense.ID, expense.OwnerID, expense.Title, amount, string(expense.Category), timeToPgDate(expense.Date),
	)

	created, err := scanExpense(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, fmt.Errorf("%w: expense %s already exists", domain.ErrInvalidInput, expense.ID)
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves one of the owner's expenses
func (r *ExpenseRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Expense, error) {
	if !isUUID(id) {
		return nil, domain.ErrExpenseNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	return notFoundAsExpense(scanExpense(row))
}

// ListByOwner returns every expense of the owner, newest first
func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE owner_id = $1
		ORDER BY spent_on DESC, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Update replaces the editable fields of an expense
func (r *ExpenseRepository) Update(ctx context.Context, ownerID, id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	if !isUUID(id) {
		return nil, domain.ErrExpenseNotFound
	}
	amount, err := floatToPgNumeric(data.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET title = $3, amount = $4, category = $5, spent_on = $6, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+expenseColumns,
		id, ownerID, data.Title, amount, string(data.Category), timeToPgDate(data.Date),
	)
	return notFoundAsExpense(scanExpense(row))
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return domain.ErrExpenseNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e        domain.Expense
		amount   pgtype.Numeric
		category string
		spentOn  pgtype.Date
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &amount, &category, &spentOn, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	e.Amount = pgNumericToFloat(amount)
	e.Category = domain.Category(category)
	e.Date = pgDateToTime(spentOn)
	return &e, nil
}

func notFoundAsExpense(e *domain.Expense, err error) (*domain.Expense, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	return e, err
}
