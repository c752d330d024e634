package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tedytech/backoffice-service/internal/domain"
	"github.com/tedytech/backoffice-service/internal/events"
	"github.com/tedytech/backoffice-service/internal/repository"
	"github.com/tedytech/backoffice-service/internal/timewindow"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

const demandMetricsCacheKey = "metrics:demand"

// Demand list sizes and restock tier thresholds.
const (
	topDemandSize       = 3
	restockListSize     = 5
	stockSnapshotSize   = 8
	contentTopicTarget  = 7
	restockTierHighMin  = 8
	restockTierMediumMin = 4
)

// genericTopics pads the content plan when demand signals back fewer than
// seven topics.
var genericTopics = []string{
	"phone care tips",
	"trade-in walkthrough",
	"new arrivals",
	"customer stories",
	"price drop highlights",
	"accessory bundles",
	"weekend deals",
}

// DemandRank is one phone type with its aggregated signal count.
type DemandRank struct {
	PhoneType domain.PhoneType `json:"phoneType"`
	Signals   int              `json:"signals"`
}

// RestockSuggestion pairs a ranked phone type with live stock and a tier.
type RestockSuggestion struct {
	PhoneType domain.PhoneType `json:"phoneType"`
	Signals   int              `json:"signals"`
	InStock   int              `json:"inStock"`
	Tier      string           `json:"tier"`
}

// StockItem is one entry of the live stock snapshot.
type StockItem struct {
	ProductID string           `json:"productId"`
	PhoneType domain.PhoneType `json:"phoneType"`
	Quantity  int              `json:"quantity"`
}

// ConversationCounts reports thread volume for one window.
type ConversationCounts struct {
	Total     int `json:"total"`
	FirstTime int `json:"firstTime"`
}

// DemandMetrics is the demand dashboard snapshot.
type DemandMetrics struct {
	ConversationsToday ConversationCounts `json:"conversationsToday"`
	ConversationsWeek  ConversationCounts `json:"conversationsWeek"`
	ConversationsMonth ConversationCounts `json:"conversationsMonth"`

	TopDemand     []DemandRank        `json:"topDemand"`
	Unavailable   []DemandRank        `json:"unavailable"`
	Restock       []RestockSuggestion `json:"restock"`
	StockSnapshot []StockItem         `json:"stockSnapshot"`
	ContentTopics []string            `json:"contentTopics"`
}

// LogDemandEventInput is the caller-supplied demand signal.
type LogDemandEventInput struct {
	Source    domain.DemandSource
	PhoneType string
	UserID    *string
	ThreadID  *string
	Meta      *string
}

// DemandService aggregates demand signals and records new ones.
type DemandService struct {
	demand     repository.DemandEventRepository
	exchanges  repository.ExchangeRepository
	products   repository.ProductRepository
	threads    repository.ThreadRepository
	windows    timewindow.Resolver
	cache      *SnapshotCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DemandDependencies bundles collaborators for the demand service.
type DemandDependencies struct {
	DemandRepo   repository.DemandEventRepository
	ExchangeRepo repository.ExchangeRepository
	ProductRepo  repository.ProductRepository
	ThreadRepo   repository.ThreadRepository
	Windows      timewindow.Resolver
	Cache        *SnapshotCache
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewDemandService constructs the service.
func NewDemandService(deps DemandDependencies) *DemandService {
	return &DemandService{
		demand:     deps.DemandRepo,
		exchanges:  deps.ExchangeRepo,
		products:   deps.ProductRepo,
		threads:    deps.ThreadRepo,
		windows:    deps.Windows,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// DemandMetrics returns the demand snapshot for the current instant.
func (s *DemandService) DemandMetrics(ctx context.Context) (*DemandMetrics, error) {
	var cached DemandMetrics
	if s.cache.Get(ctx, demandMetricsCacheKey, &cached) {
		return &cached, nil
	}

	metrics, err := s.ComputeDemandMetrics(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, demandMetricsCacheKey, metrics)
	return metrics, nil
}

// ComputeDemandMetrics recomputes the demand snapshot at the given instant.
func (s *DemandService) ComputeDemandMetrics(ctx context.Context, now time.Time) (*DemandMetrics, error) {
	todayStart := s.windows.TodayStart(now)
	weekAgo := timewindow.Cutoff(now, timewindow.WindowWeek)
	monthAgo := timewindow.Cutoff(now, timewindow.WindowMonth)

	signals, err := s.tallySignals(ctx, weekAgo)
	if err != nil {
		return nil, err
	}
	ranking := rankSignals(signals)

	activeProducts, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stockByType := make(map[domain.PhoneType]int)
	for _, p := range activeProducts {
		stockByType[domain.NormalizePhoneType(p.PhoneType)] += p.StockQuantity
	}

	metrics := &DemandMetrics{
		TopDemand:     []DemandRank{},
		Unavailable:   []DemandRank{},
		Restock:       []RestockSuggestion{},
		StockSnapshot: []StockItem{},
	}

	for i, rank := range ranking {
		if i < topDemandSize {
			metrics.TopDemand = append(metrics.TopDemand, rank)
			if stockByType[rank.PhoneType] == 0 {
				metrics.Unavailable = append(metrics.Unavailable, rank)
			}
		}
		if i < restockListSize {
			metrics.Restock = append(metrics.Restock, RestockSuggestion{
				PhoneType: rank.PhoneType,
				Signals:   rank.Signals,
				InStock:   stockByType[rank.PhoneType],
				Tier:      restockTier(rank.Signals),
			})
		}
	}

	metrics.StockSnapshot = stockSnapshot(activeProducts)
	metrics.ContentTopics = contentTopics(ranking)

	if metrics.ConversationsToday, err = s.conversationCounts(ctx, todayStart, now); err != nil {
		return nil, err
	}
	if metrics.ConversationsWeek, err = s.conversationCounts(ctx, weekAgo, now); err != nil {
		return nil, err
	}
	if metrics.ConversationsMonth, err = s.conversationCounts(ctx, monthAgo, now); err != nil {
		return nil, err
	}

	return metrics, nil
}

// tallySignals counts demand evidence per phone type: logged demand events
// plus exchange submissions in the window, the latter resolved to a phone
// type through a batched, deduplicated product lookup.
func (s *DemandService) tallySignals(ctx context.Context, since time.Time) (map[domain.PhoneType]int, error) {
	counts := make(map[domain.PhoneType]int)

	demandEvents, err := s.demand.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}
	for _, event := range demandEvents {
		counts[event.PhoneType]++
	}

	submissions, err := s.exchanges.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	idSet := make(map[string]struct{}, len(submissions))
	for _, ex := range submissions {
		idSet[ex.DesiredProductID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	productsByID, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, ex := range submissions {
		product, ok := productsByID[ex.DesiredProductID]
		if !ok {
			continue
		}
		counts[domain.NormalizePhoneType(product.PhoneType)]++
	}

	return counts, nil
}

// rankSignals orders phone types by descending signal count; equal counts
// are broken alphabetically so the ranking is stable across recomputation.
func rankSignals(counts map[domain.PhoneType]int) []DemandRank {
	ranking := make([]DemandRank, 0, len(counts))
	for phoneType, count := range counts {
		ranking = append(ranking, DemandRank{PhoneType: phoneType, Signals: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Signals != ranking[j].Signals {
			return ranking[i].Signals > ranking[j].Signals
		}
		return ranking[i].PhoneType < ranking[j].PhoneType
	})
	return ranking
}

func restockTier(signals int) string {
	switch {
	case signals >= restockTierHighMin:
		return "high"
	case signals >= restockTierMediumMin:
		return "medium"
	default:
		return "low"
	}
}

// stockSnapshot lists active in-stock products by descending quantity,
// truncated for the content-plan view.
func stockSnapshot(products []domain.Product) []StockItem {
	inStock := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.StockQuantity > 0 {
			inStock = append(inStock, p)
		}
	}
	sort.Slice(inStock, func(i, j int) bool {
		if inStock[i].StockQuantity != inStock[j].StockQuantity {
			return inStock[i].StockQuantity > inStock[j].StockQuantity
		}
		return inStock[i].PhoneType < inStock[j].PhoneType
	})
	if len(inStock) > stockSnapshotSize {
		inStock = inStock[:stockSnapshotSize]
	}
	items := make([]StockItem, 0, len(inStock))
	for _, p := range inStock {
		items = append(items, StockItem{
			ProductID: p.ID,
			PhoneType: domain.NormalizePhoneType(p.PhoneType),
			Quantity:  p.StockQuantity,
		})
	}
	return items
}

// contentTopics backs the content plan with demand-ranked topics, padding
// from the fixed generic rotation up to the target size.
func contentTopics(ranking []DemandRank) []string {
	topics := make([]string, 0, contentTopicTarget)
	for _, rank := range ranking {
		if len(topics) == contentTopicTarget {
			return topics
		}
		topics = append(topics, string(rank.PhoneType))
	}
	for _, generic := range genericTopics {
		if len(topics) == contentTopicTarget {
			break
		}
		topics = append(topics, generic)
	}
	return topics
}

func (s *DemandService) conversationCounts(ctx context.Context, from, to time.Time) (ConversationCounts, error) {
	total, err := s.threads.CountCreatedInWindow(ctx, from, to)
	if err != nil {
		return ConversationCounts{}, err
	}
	firstTime, err := s.threads.CountFirstMessagedInWindow(ctx, from, to)
	if err != nil {
		return ConversationCounts{}, err
	}
	return ConversationCounts{Total: total, FirstTime: firstTime}, nil
}

// LogDemandEvent validates, normalizes and records a demand signal. Bot
// signals tied to a thread are deduplicated to one record per thread and
// phone type per business day; a duplicate returns the existing record id.
func (s *DemandService) LogDemandEvent(ctx context.Context, now time.Time, input LogDemandEventInput) (string, error) {
	if !domain.ValidDemandSource(input.Source) {
		return "", apperrors.NewValidationError("source must be one of bot, search, select", nil)
	}
	phoneType := domain.NormalizePhoneType(input.PhoneType)
	if msg := domain.ValidatePhoneType(phoneType); msg != "" {
		return "", apperrors.NewValidationError(msg, map[string]any{"field": "phoneType"})
	}

	if input.Source == domain.DemandSourceBot && input.ThreadID != nil {
		todayStart := s.windows.TodayStart(now)
		existing, err := s.demand.FindBotEventSince(ctx, phoneType, *input.ThreadID, todayStart)
		if err != nil {
			return "", err
		}
		if existing != nil {
			s.publishDemandLogged(ctx, now, existing.ID, input.Source, phoneType, input.ThreadID, true)
			return existing.ID, nil
		}
	}

	event := &domain.DemandEvent{
		Source:    input.Source,
		PhoneType: phoneType,
		UserID:    input.UserID,
		ThreadID:  input.ThreadID,
		Meta:      input.Meta,
		CreatedAt: now,
	}
	if err := s.demand.Create(ctx, event); err != nil {
		return "", err
	}

	s.publishDemandLogged(ctx, now, event.ID, input.Source, phoneType, input.ThreadID, false)
	return event.ID, nil
}

func (s *DemandService) publishDemandLogged(ctx context.Context, now time.Time, eventID string,
	source domain.DemandSource, phoneType domain.PhoneType, threadID *string, deduplicated bool) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDemandLogged,
		Timestamp: now,
		Payload: events.DemandLoggedPayload{
			EventID:      eventID,
			Source:       source,
			PhoneType:    phoneType,
			ThreadID:     threadID,
			Deduplicated: deduplicated,
		},
	})
	if err != nil {
		s.logger.Warn("publish demand event", zap.Error(err))
	}
}
