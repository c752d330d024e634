package domain

import "time"

// SenderKind is a closed classification of who authored a message. It is
// resolved once at the repository boundary from the stored sender and
// sender_role columns so that downstream code never interprets a missing
// role field on its own.
type SenderKind string

const (
	SenderCustomer   SenderKind = "customer"
	SenderHumanAdmin SenderKind = "human_admin"
	SenderBot        SenderKind = "bot"
)

// Message belongs to exactly one thread.
type Message struct {
	ID        string
	ThreadID  string
	Sender    SenderKind
	CreatedAt time.Time
}

// IsHumanReply reports whether the message counts as a human admin reply.
// Bot-authored messages never do.
func (m *Message) IsHumanReply() bool {
	return m.Sender == SenderHumanAdmin
}
