package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/tedytech/backoffice-service/internal/repository"
)

// replyLatencyCap bounds a single latency sample so multi-day gaps cannot
// dominate the median.
const replyLatencyCap = time.Hour

// ReplyTimeEstimator computes the windowed median reply latency: for every
// thread with customer activity in the window, the delta between its last
// customer message and the first human admin reply after it.
type ReplyTimeEstimator struct {
	messages repository.MessageRepository
}

// NewReplyTimeEstimator constructs the estimator.
func NewReplyTimeEstimator(messages repository.MessageRepository) *ReplyTimeEstimator {
	return &ReplyTimeEstimator{messages: messages}
}

// MedianReplyMinutes returns the median latency for [from, to) in whole
// minutes, or 0 when no thread in the window received a human reply.
func (e *ReplyTimeEstimator) MedianReplyMinutes(ctx context.Context, from, to time.Time) (int, error) {
	custMsgs, err := e.messages.ListCustomerInWindow(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if len(custMsgs) == 0 {
		return 0, nil
	}

	// Latest customer message per thread within the window.
	lastCustByThread := make(map[string]time.Time)
	for _, m := range custMsgs {
		if last, ok := lastCustByThread[m.ThreadID]; !ok || m.CreatedAt.After(last) {
			lastCustByThread[m.ThreadID] = m.CreatedAt
		}
	}

	// Admin messages from the window start onwards; the upper bound is open
	// because a reply may land after the window closes. Bot messages never
	// count as replies.
	adminMsgs, err := e.messages.ListAdminSince(ctx, from)
	if err != nil {
		return 0, err
	}
	adminByThread := make(map[string][]time.Time)
	for _, m := range adminMsgs {
		if !m.IsHumanReply() {
			continue
		}
		adminByThread[m.ThreadID] = append(adminByThread[m.ThreadID], m.CreatedAt)
	}
	for _, times := range adminByThread {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	}

	// First reply strictly after the last customer message; a reply sent
	// before or at that instant is not an answer to it. Threads without any
	// qualifying reply contribute no sample.
	var samples []float64
	for threadID, lastCust := range lastCustByThread {
		for _, replyAt := range adminByThread[threadID] {
			if replyAt.After(lastCust) {
				latency := replyAt.Sub(lastCust)
				if latency > replyLatencyCap {
					latency = replyLatencyCap
				}
				samples = append(samples, float64(latency.Milliseconds()))
				break
			}
		}
	}

	return int(math.Round(medianOf(samples) / 60_000)), nil
}

// medianOf returns the middle value of the samples, averaging the two middle
// values for an even count. Empty input yields 0.
func medianOf(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
