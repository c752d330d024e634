package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// ThreadRepository exposes the read surface the metrics engine needs over
// the threads collection.
type ThreadRepository interface {
	ListAll(ctx context.Context) ([]domain.Thread, error)
	CountCreatedInWindow(ctx context.Context, from, to time.Time) (int, error)
	CountFirstMessagedInWindow(ctx context.Context, from, to time.Time) (int, error)
}

type threadRepository struct {
	pool *pgxpool.Pool
}

// NewThreadRepository instantiates repository.
func NewThreadRepository(pool *pgxpool.Pool) ThreadRepository {
	return &threadRepository{pool: pool}
}

const threadColumns = `id, status, last_customer_message_at, last_admin_message_at,
        first_message_at, has_admin_replied, has_customer_messaged,
        last_customer_message_has_budget_keyword, created_at, updated_at`

func (r *threadRepository) ListAll(ctx context.Context) ([]domain.Thread, error) {
	query := `SELECT ` + threadColumns + ` FROM threads`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanThreads(rows)
}

func (r *threadRepository) CountCreatedInWindow(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM threads WHERE created_at >= $1 AND created_at < $2`
	var count int
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *threadRepository) CountFirstMessagedInWindow(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM threads WHERE first_message_at >= $1 AND first_message_at < $2`
	var count int
	err := r.pool.QueryRow(ctx, query, from, to).Scan(&count)
	return count, err
}

func scanThreads(rows pgx.Rows) ([]domain.Thread, error) {
	var result []domain.Thread
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(
			&thread.ID,
			&thread.Status,
			&thread.LastCustomerMessageAt,
			&thread.LastAdminMessageAt,
			&thread.FirstMessageAt,
			&thread.HasAdminReplied,
			&thread.HasCustomerMessaged,
			&thread.LastCustomerHasBudgetWord,
			&thread.CreatedAt,
			&thread.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, thread)
	}
	return result, rows.Err()
}
