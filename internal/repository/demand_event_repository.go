package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// DemandEventRepository persists demand signals. Insert is the only write
// anywhere in the metrics engine.
type DemandEventRepository interface {
	Create(ctx context.Context, event *domain.DemandEvent) error
	ListSince(ctx context.Context, since time.Time) ([]domain.DemandEvent, error)
	// FindBotEventSince returns the first bot event for the given thread and
	// phone type at or after the given instant, or nil when none exists.
	FindBotEventSince(ctx context.Context, phoneType domain.PhoneType, threadID string, since time.Time) (*domain.DemandEvent, error)
}

type demandEventRepository struct {
	pool *pgxpool.Pool
}

// NewDemandEventRepository instantiates repository.
func NewDemandEventRepository(pool *pgxpool.Pool) DemandEventRepository {
	return &demandEventRepository{pool: pool}
}

func (r *demandEventRepository) Create(ctx context.Context, event *domain.DemandEvent) error {
	const query = `
        INSERT INTO demand_events (source, phone_type, user_id, thread_id, meta, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		event.Source,
		event.PhoneType,
		event.UserID,
		event.ThreadID,
		event.Meta,
		event.CreatedAt,
	).Scan(&event.ID)
}

func (r *demandEventRepository) ListSince(ctx context.Context, since time.Time) ([]domain.DemandEvent, error) {
	const query = `
        SELECT id, source, phone_type, user_id, thread_id, meta, created_at
        FROM demand_events WHERE created_at >= $1`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DemandEvent
	for rows.Next() {
		var event domain.DemandEvent
		if err := rows.Scan(
			&event.ID,
			&event.Source,
			&event.PhoneType,
			&event.UserID,
			&event.ThreadID,
			&event.Meta,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *demandEventRepository) FindBotEventSince(ctx context.Context, phoneType domain.PhoneType, threadID string, since time.Time) (*domain.DemandEvent, error) {
	const query = `
        SELECT id, source, phone_type, user_id, thread_id, meta, created_at
        FROM demand_events
        WHERE phone_type = $1 AND created_at >= $2 AND source = 'bot' AND thread_id = $3
        LIMIT 1`
	var event domain.DemandEvent
	err := r.pool.QueryRow(ctx, query, phoneType, since, threadID).Scan(
		&event.ID,
		&event.Source,
		&event.PhoneType,
		&event.UserID,
		&event.ThreadID,
		&event.Meta,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
