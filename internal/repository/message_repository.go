package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// MessageRepository exposes indexed range scans over the messages
// collection. The sender identity is resolved into a closed SenderKind here
// so no caller has to interpret a missing sender_role column.
type MessageRepository interface {
	ListCustomerInWindow(ctx context.Context, from, to time.Time) ([]domain.Message, error)
	ListAdminSince(ctx context.Context, from time.Time) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) ListCustomerInWindow(ctx context.Context, from, to time.Time) ([]domain.Message, error) {
	const query = `
        SELECT id, thread_id, sender, sender_role, created_at
        FROM messages
        WHERE sender = 'customer' AND created_at >= $1 AND created_at < $2
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListAdminSince is deliberately unbounded above: a reply to a message near
// the end of a window may land after the window closes.
func (r *messageRepository) ListAdminSince(ctx context.Context, from time.Time) ([]domain.Message, error) {
	const query = `
        SELECT id, thread_id, sender, sender_role, created_at
        FROM messages
        WHERE sender = 'admin' AND created_at >= $1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	var result []domain.Message
	for rows.Next() {
		var (
			msg        domain.Message
			sender     string
			senderRole *string
		)
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &sender, &senderRole, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Sender = resolveSenderKind(sender, senderRole)
		result = append(result, msg)
	}
	return result, rows.Err()
}

func resolveSenderKind(sender string, senderRole *string) domain.SenderKind {
	if sender == "customer" {
		return domain.SenderCustomer
	}
	if senderRole != nil && *senderRole == "bot" {
		return domain.SenderBot
	}
	return domain.SenderHumanAdmin
}
