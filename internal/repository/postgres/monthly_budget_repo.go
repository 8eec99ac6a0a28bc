package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const monthlyBudgetColumns = `id::text, owner_id, year, month, income, savings_goal, created_at, updated_at`

// MonthlyBudgetRepository implements domain.MonthlyBudgetRepository using PostgreSQL
type MonthlyBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyBudgetRepository creates a new MonthlyBudgetRepository
func NewMonthlyBudgetRepository(pool *pgxpool.Pool) *MonthlyBudgetRepository {
	return &MonthlyBudgetRepository{pool: pool}
}

// Upsert relies on the (owner_id, year, month) unique constraint so a month
// can never hold two records
func (r *MonthlyBudgetRepository) Upsert(ctx context.Context, budget *domain.MonthlyBudget) (*domain.MonthlyBudget, error) {
	income, err := floatToPgNumeric(budget.Income)
	if err != nil {
		return nil, err
	}
	goal, err := floatToPgNumeric(budget.SavingsGoal)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_budgets (owner_id, year, month, income, savings_goal)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT monthly_budgets_owner_month_key
		DO UPDATE SET income = EXCLUDED.income, savings_goal = EXCLUDED.savings_goal, updated_at = NOW()
		RETURNING `+monthlyBudgetColumns,
		budget.OwnerID, int32(budget.Year), int32(budget.Month), income, goal,
	)
	return scanMonthlyBudget(row)
}

// GetByID retrieves one of the owner's monthly budgets
func (r *MonthlyBudgetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.MonthlyBudget, error) {
	if !isUUID(id) {
		return nil, domain.ErrMonthlyBudgetNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+monthlyBudgetColumns+`
		FROM monthly_budgets
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	b, err := scanMonthlyBudget(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMonthlyBudgetNotFound
	}
	return b, err
}

// ListByOwner returns the owner's monthly budgets, most recent month first
func (r *MonthlyBudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.MonthlyBudget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+monthlyBudgetColumns+`
		FROM monthly_budgets
		WHERE owner_id = $1
		ORDER BY year DESC, month DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.MonthlyBudget, 0)
	for rows.Next() {
		b, err := scanMonthlyBudget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// Delete removes a monthly budget
func (r *MonthlyBudgetRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !isUUID(id) {
		return domain.ErrMonthlyBudgetNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM monthly_budgets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMonthlyBudgetNotFound
	}
	return nil
}

func scanMonthlyBudget(row pgx.Row) (*domain.MonthlyBudget, error) {
	var (
		b           domain.MonthlyBudget
		year, month int32
		income      pgtype.Numeric
		goal        pgtype.Numeric
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &year, &month, &income, &goal, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	b.Year = int(year)
	b.Month = int(month)
	b.Income = pgNumericToFloat(income)
	b.SavingsGoal = pgNumericToFloat(goal)
	return &b, nil
}
