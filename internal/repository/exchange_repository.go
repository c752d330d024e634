package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// ExchangeRepository exposes indexed scans over the exchanges collection.
type ExchangeRepository interface {
	ListByStatus(ctx context.Context, status domain.ExchangeStatus) ([]domain.Exchange, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Exchange, error)
}

type exchangeRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRepository instantiates repository.
func NewExchangeRepository(pool *pgxpool.Pool) ExchangeRepository {
	return &exchangeRepository{pool: pool}
}

const exchangeColumns = `id, thread_id, desired_product_id, status, final_difference,
        priority_value_etb, clicked_continue, budget_mentioned_in_submission,
        quoted_at, completed_at, created_at`

func (r *exchangeRepository) ListByStatus(ctx context.Context, status domain.ExchangeStatus) ([]domain.Exchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchanges WHERE status = $1`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExchanges(rows)
}

func (r *exchangeRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Exchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM exchanges WHERE created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExchanges(rows)
}

func scanExchanges(rows pgx.Rows) ([]domain.Exchange, error) {
	var result []domain.Exchange
	for rows.Next() {
		var ex domain.Exchange
		if err := rows.Scan(
			&ex.ID,
			&ex.ThreadID,
			&ex.DesiredProductID,
			&ex.Status,
			&ex.FinalDifference,
			&ex.PriorityValueETB,
			&ex.ClickedContinue,
			&ex.BudgetMentioned,
			&ex.QuotedAt,
			&ex.CompletedAt,
			&ex.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}
