package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tedytech/backoffice-service/internal/domain"
	"github.com/tedytech/backoffice-service/internal/events"
	"github.com/tedytech/backoffice-service/internal/repository"
	"github.com/tedytech/backoffice-service/internal/timewindow"
)

const homeMetricsCacheKey = "metrics:home"

// HomeMetrics is the derived dashboard snapshot. It is valid only for the
// computation that produced it; nothing here is persisted.
type HomeMetrics struct {
	RepliesWaiting15m          int `json:"repliesWaiting15m"`
	RepliesWaiting15mYesterday int `json:"repliesWaiting15mYesterday"`

	FirstTimeToday     int `json:"firstTimeToday"`
	FirstTimeYesterday int `json:"firstTimeYesterday"`

	MedianReplyToday     int `json:"medianReplyToday"`
	MedianReplyYesterday int `json:"medianReplyYesterday"`

	PhonesSoldToday     int `json:"phonesSoldToday"`
	PhonesSoldYesterday int `json:"phonesSoldYesterday"`

	FollowUpPending int `json:"followUpPending"`

	Alerts AlertBundle `json:"alerts"`
}

// AlertBundle carries the raw alert counters plus the evaluated entries.
// Ratios and percentages are nil when their denominator is zero.
type AlertBundle struct {
	Waiting30m       int      `json:"waiting30m"`
	LowStock         int      `json:"lowStock"`
	ReplySlowRatio   *float64 `json:"replySlowRatio"`
	UnansweredToday  int      `json:"unansweredToday"`
	Quotes48h        int      `json:"quotes48h"`
	NewCustomerToday int      `json:"newCustomerToday"`
	NewCustomerDelta int      `json:"newCustomerDelta"`
	NewCustomerPct   *int     `json:"newCustomerPct"`
	Entries          []Alert  `json:"entries"`
}

// MetricsService aggregates thread, message, exchange and product reads into
// the home dashboard KPIs.
type MetricsService struct {
	threads    repository.ThreadRepository
	exchanges  repository.ExchangeRepository
	products   repository.ProductRepository
	estimator  *ReplyTimeEstimator
	windows    timewindow.Resolver
	cache      *SnapshotCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MetricsDependencies bundles collaborators for the metrics service.
type MetricsDependencies struct {
	ThreadRepo   repository.ThreadRepository
	ExchangeRepo repository.ExchangeRepository
	ProductRepo  repository.ProductRepository
	Estimator    *ReplyTimeEstimator
	Windows      timewindow.Resolver
	Cache        *SnapshotCache
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewMetricsService constructs the service.
func NewMetricsService(deps MetricsDependencies) *MetricsService {
	return &MetricsService{
		threads:    deps.ThreadRepo,
		exchanges:  deps.ExchangeRepo,
		products:   deps.ProductRepo,
		estimator:  deps.Estimator,
		windows:    deps.Windows,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// HomeMetrics returns the dashboard snapshot for the current instant,
// serving a recent cached snapshot when available.
func (s *MetricsService) HomeMetrics(ctx context.Context) (*HomeMetrics, error) {
	var cached HomeMetrics
	if s.cache.Get(ctx, homeMetricsCacheKey, &cached) {
		return &cached, nil
	}

	metrics, err := s.ComputeHomeMetrics(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, homeMetricsCacheKey, metrics)
	return metrics, nil
}

// ComputeHomeMetrics recomputes every KPI from the live snapshot at the
// given instant. The instant is explicit so tests can inject it.
func (s *MetricsService) ComputeHomeMetrics(ctx context.Context, now time.Time) (*HomeMetrics, error) {
	todayStart, yesterdayStart := s.windows.DayBoundaries(now)
	cutoff15m := timewindow.Cutoff(now, timewindow.CutoffWaiting)
	cutoff30m := timewindow.Cutoff(now, timewindow.CutoffAlertWaiting)
	cutoff12h := timewindow.Cutoff(now, timewindow.CutoffFollowUp)
	cutoff48h := timewindow.Cutoff(now, timewindow.CutoffStaleQuote)

	allThreads, err := s.threads.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &HomeMetrics{}

	for i := range allThreads {
		t := &allThreads[i]
		active := t.IsActive()
		awaiting := t.AwaitingReply()

		if active && awaiting && t.LastCustomerMessageAt.Before(cutoff15m) {
			metrics.RepliesWaiting15m++
		}
		if awaiting && t.LastCustomerMessageAt != nil &&
			!t.LastCustomerMessageAt.Before(yesterdayStart) &&
			t.LastCustomerMessageAt.Before(todayStart) {
			metrics.RepliesWaiting15mYesterday++
		}

		// Threads without firstMessageAt predate the backfill and are
		// excluded from first-contact metrics.
		if t.FirstMessageAt != nil {
			if !t.FirstMessageAt.Before(todayStart) && t.FirstMessageAt.Before(now) {
				metrics.FirstTimeToday++
				if !t.HasAdminReplied {
					metrics.Alerts.UnansweredToday++
				}
			}
			if !t.FirstMessageAt.Before(yesterdayStart) && t.FirstMessageAt.Before(todayStart) {
				metrics.FirstTimeYesterday++
			}
		}

		if active && awaiting && t.LastCustomerMessageAt.Before(cutoff12h) {
			metrics.FollowUpPending++
		}
		if active && awaiting && t.LastCustomerMessageAt.Before(cutoff30m) {
			metrics.Alerts.Waiting30m++
		}
	}

	metrics.MedianReplyToday, err = s.estimator.MedianReplyMinutes(ctx, todayStart, now)
	if err != nil {
		return nil, err
	}
	metrics.MedianReplyYesterday, err = s.estimator.MedianReplyMinutes(ctx, yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}

	completed, err := s.exchanges.ListByStatus(ctx, domain.ExchangeStatusCompleted)
	if err != nil {
		return nil, err
	}
	for _, ex := range completed {
		if ex.CompletedAt == nil {
			continue
		}
		if !ex.CompletedAt.Before(todayStart) {
			metrics.PhonesSoldToday++
		} else if !ex.CompletedAt.Before(yesterdayStart) {
			metrics.PhonesSoldYesterday++
		}
	}

	quoted, err := s.exchanges.ListByStatus(ctx, domain.ExchangeStatusQuoted)
	if err != nil {
		return nil, err
	}
	for _, ex := range quoted {
		if ex.QuotedAt != nil && ex.QuotedAt.Before(cutoff48h) {
			metrics.Alerts.Quotes48h++
		}
	}

	activeProducts, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range activeProducts {
		if activeProducts[i].IsLowStock() {
			metrics.Alerts.LowStock++
		}
	}

	if metrics.MedianReplyToday > 0 && metrics.MedianReplyYesterday > 0 {
		ratio := float64(metrics.MedianReplyToday) / float64(metrics.MedianReplyYesterday)
		metrics.Alerts.ReplySlowRatio = &ratio
	}

	metrics.Alerts.NewCustomerToday = metrics.FirstTimeToday
	metrics.Alerts.NewCustomerDelta = metrics.FirstTimeToday - metrics.FirstTimeYesterday
	if metrics.FirstTimeYesterday > 0 {
		pct := int(math.Round(float64(metrics.Alerts.NewCustomerDelta) /
			float64(metrics.FirstTimeYesterday) * 100))
		metrics.Alerts.NewCustomerPct = &pct
	}

	metrics.Alerts.Entries = EvaluateAlerts(AlertInputs{
		Waiting30m:       metrics.Alerts.Waiting30m,
		LowStock:         metrics.Alerts.LowStock,
		MedianReplyToday: metrics.MedianReplyToday,
		MedianReplyYest:  metrics.MedianReplyYesterday,
		UnansweredToday:  metrics.Alerts.UnansweredToday,
		Quotes48h:        metrics.Alerts.Quotes48h,
		NewCustomerToday: metrics.Alerts.NewCustomerToday,
		NewCustomerDelta: metrics.Alerts.NewCustomerDelta,
		NewCustomerPct:   metrics.Alerts.NewCustomerPct,
	})

	s.publishAlertsEvaluated(ctx, now, metrics.Alerts.Entries)

	return metrics, nil
}

func (s *MetricsService) publishAlertsEvaluated(ctx context.Context, now time.Time, alerts []Alert) {
	if s.dispatcher == nil || len(alerts) == 0 {
		return
	}
	codes := make([]string, 0, len(alerts))
	for _, a := range alerts {
		codes = append(codes, a.Code)
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAlertsEvaluated,
		Timestamp: now,
		Payload:   events.AlertsEvaluatedPayload{Count: len(alerts), Codes: codes},
	})
	if err != nil {
		s.logger.Warn("publish alerts event", zap.Error(err))
	}
}
