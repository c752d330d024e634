package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tedytech/backoffice-service/internal/domain"
)

type fakeThreadRepo struct {
	threads []domain.Thread
}

func (f *fakeThreadRepo) ListAll(ctx context.Context) ([]domain.Thread, error) {
	return append([]domain.Thread{}, f.threads...), nil
}

func (f *fakeThreadRepo) CountCreatedInWindow(ctx context.Context, from, to time.Time) (int, error) {
	count := 0
	for _, t := range f.threads {
		if inWindow(t.CreatedAt, from, to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeThreadRepo) CountFirstMessagedInWindow(ctx context.Context, from, to time.Time) (int, error) {
	count := 0
	for _, t := range f.threads {
		if t.FirstMessageAt != nil && inWindow(*t.FirstMessageAt, from, to) {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	messages []domain.Message
}

func (f *fakeMessageRepo) ListCustomerInWindow(ctx context.Context, from, to time.Time) ([]domain.Message, error) {
	var result []domain.Message
	for _, m := range f.messages {
		if m.Sender == domain.SenderCustomer && inWindow(m.CreatedAt, from, to) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) ListAdminSince(ctx context.Context, from time.Time) ([]domain.Message, error) {
	var result []domain.Message
	for _, m := range f.messages {
		if m.Sender != domain.SenderCustomer && !m.CreatedAt.Before(from) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeExchangeRepo struct {
	exchanges []domain.Exchange
}

func (f *fakeExchangeRepo) ListByStatus(ctx context.Context, status domain.ExchangeStatus) ([]domain.Exchange, error) {
	var result []domain.Exchange
	for _, ex := range f.exchanges {
		if ex.Status == status {
			result = append(result, ex)
		}
	}
	return result, nil
}

func (f *fakeExchangeRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Exchange, error) {
	var result []domain.Exchange
	for _, ex := range f.exchanges {
		if !ex.CreatedAt.Before(since) {
			result = append(result, ex)
		}
	}
	return result, nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var result []domain.Product
	for _, p := range f.products {
		if !p.IsArchived {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	result := make(map[string]domain.Product)
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				result[id] = p
			}
		}
	}
	return result, nil
}

type fakeDemandRepo struct {
	events []domain.DemandEvent
	nextID int
}

func (f *fakeDemandRepo) Create(ctx context.Context, event *domain.DemandEvent) error {
	f.nextID++
	event.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeDemandRepo) ListSince(ctx context.Context, since time.Time) ([]domain.DemandEvent, error) {
	var result []domain.DemandEvent
	for _, e := range f.events {
		if !e.CreatedAt.Before(since) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeDemandRepo) FindBotEventSince(ctx context.Context, phoneType domain.PhoneType, threadID string, since time.Time) (*domain.DemandEvent, error) {
	for i := range f.events {
		e := &f.events[i]
		if e.Source == domain.DemandSourceBot &&
			e.PhoneType == phoneType &&
			e.ThreadID != nil && *e.ThreadID == threadID &&
			!e.CreatedAt.Before(since) {
			return e, nil
		}
	}
	return nil, nil
}

func inWindow(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
