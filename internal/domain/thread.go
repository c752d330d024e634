package domain

import "time"

// ThreadStatus enumerates lifecycle states for customer threads.
type ThreadStatus string

const (
	ThreadStatusNew  ThreadStatus = "new"
	ThreadStatusSeen ThreadStatus = "seen"
	ThreadStatusDone ThreadStatus = "done"
)

// Thread is one customer conversation. The metrics engine only reads it;
// the messaging layer owns all mutation.
type Thread struct {
	ID                        string
	Status                    ThreadStatus
	LastCustomerMessageAt     *time.Time
	LastAdminMessageAt        *time.Time
	FirstMessageAt            *time.Time
	HasAdminReplied           bool
	HasCustomerMessaged       bool
	LastCustomerHasBudgetWord bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// IsActive reports whether the thread still needs attention.
func (t *Thread) IsActive() bool {
	return t.Status == ThreadStatusNew || t.Status == ThreadStatusSeen
}

// AwaitingReply reports whether the last customer message has no later admin
// message. Threads with no customer message at all are not awaiting anything.
func (t *Thread) AwaitingReply() bool {
	if t.LastCustomerMessageAt == nil {
		return false
	}
	if t.LastAdminMessageAt == nil {
		return true
	}
	return t.LastCustomerMessageAt.After(*t.LastAdminMessageAt)
}
