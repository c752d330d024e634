package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tedytech/backoffice-service/internal/domain"
	"github.com/tedytech/backoffice-service/internal/timewindow"
	apperrors "github.com/tedytech/backoffice-service/pkg/util"
)

func newTestDemandService(demand *fakeDemandRepo, exchanges *fakeExchangeRepo,
	products *fakeProductRepo, threads *fakeThreadRepo) *DemandService {
	return NewDemandService(DemandDependencies{
		DemandRepo:   demand,
		ExchangeRepo: exchanges,
		ProductRepo:  products,
		ThreadRepo:   threads,
		Windows:      timewindow.NewResolver(3),
		Logger:       zap.NewNop(),
	})
}

func demandEventsFor(now time.Time, phoneType string, count int) []domain.DemandEvent {
	events := make([]domain.DemandEvent, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, domain.DemandEvent{
			Source:    domain.DemandSourceSearch,
			PhoneType: domain.NormalizePhoneType(phoneType),
			CreatedAt: now.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	return events
}

func TestLogDemandEventNormalizesPhoneType(t *testing.T) {
	demand := &fakeDemandRepo{}
	svc := newTestDemandService(demand, &fakeExchangeRepo{}, &fakeProductRepo{}, &fakeThreadRepo{})

	id, err := svc.LogDemandEvent(context.Background(), testNow, LogDemandEventInput{
		Source:    domain.DemandSourceSearch,
		PhoneType: "  iPhone   15  Pro ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected a record id")
	}
	if got := demand.events[0].PhoneType; got != "iphone 15 pro" {
		t.Fatalf("expected normalized key, got %q", got)
	}
}

func TestLogDemandEventValidation(t *testing.T) {
	svc := newTestDemandService(&fakeDemandRepo{}, &fakeExchangeRepo{}, &fakeProductRepo{}, &fakeThreadRepo{})

	cases := []struct {
		name  string
		input LogDemandEventInput
	}{
		{"empty after normalization", LogDemandEventInput{Source: domain.DemandSourceBot, PhoneType: "   "}},
		{"too short", LogDemandEventInput{Source: domain.DemandSourceSearch, PhoneType: "a1"}},
		{"invalid characters", LogDemandEventInput{Source: domain.DemandSourceSearch, PhoneType: "iphone <13>"}},
		{"unknown source", LogDemandEventInput{Source: "webhook", PhoneType: "iphone 13"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LogDemandEvent(context.Background(), testNow, tc.input)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLogDemandEventBotIdempotentPerBusinessDay(t *testing.T) {
	demand := &fakeDemandRepo{}
	svc := newTestDemandService(demand, &fakeExchangeRepo{}, &fakeProductRepo{}, &fakeThreadRepo{})
	threadID := "thread-1"
	input := LogDemandEventInput{
		Source:    domain.DemandSourceBot,
		PhoneType: "Samsung S24",
		ThreadID:  &threadID,
	}

	first, err := svc.LogDemandEvent(context.Background(), testNow, input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.LogDemandEvent(context.Background(), testNow.Add(2*time.Hour), input)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("same business day must return the existing id: %s vs %s", first, second)
	}
	if len(demand.events) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(demand.events))
	}

	// Past the business-day boundary a fresh record is created.
	third, err := svc.LogDemandEvent(context.Background(), testNow.Add(24*time.Hour), input)
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Fatal("next business day must create a new record")
	}
	if len(demand.events) != 2 {
		t.Fatalf("expected two stored records, got %d", len(demand.events))
	}
}

func TestLogDemandEventSearchNotDeduplicated(t *testing.T) {
	demand := &fakeDemandRepo{}
	svc := newTestDemandService(demand, &fakeExchangeRepo{}, &fakeProductRepo{}, &fakeThreadRepo{})
	input := LogDemandEventInput{Source: domain.DemandSourceSearch, PhoneType: "tecno spark"}

	if _, err := svc.LogDemandEvent(context.Background(), testNow, input); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.LogDemandEvent(context.Background(), testNow, input); err != nil {
		t.Fatal(err)
	}
	if len(demand.events) != 2 {
		t.Fatalf("search events are never deduplicated, got %d records", len(demand.events))
	}
}

func TestDemandRankingCombinesEventsAndSubmissions(t *testing.T) {
	var events []domain.DemandEvent
	events = append(events, demandEventsFor(testNow, "iphone 15", 4)...)
	events = append(events, demandEventsFor(testNow, "samsung s24", 2)...)
	demand := &fakeDemandRepo{events: events}

	products := &fakeProductRepo{products: []domain.Product{
		{ID: "p1", PhoneType: "Samsung S24", StockQuantity: 3},
	}}
	exchanges := &fakeExchangeRepo{exchanges: []domain.Exchange{
		{DesiredProductID: "p1", Status: domain.ExchangeStatusPending, CreatedAt: testNow.Add(-2 * time.Hour)},
		{DesiredProductID: "p1", Status: domain.ExchangeStatusQuoted, CreatedAt: testNow.Add(-3 * time.Hour)},
		{DesiredProductID: "p1", Status: domain.ExchangeStatusPending, CreatedAt: testNow.Add(-8 * 24 * time.Hour)}, // outside window
	}}

	svc := newTestDemandService(demand, exchanges, products, &fakeThreadRepo{})
	metrics, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}

	// samsung s24: 2 events + 2 in-window submissions = 4; ties with
	// iphone 15 break alphabetically.
	want := []DemandRank{
		{PhoneType: "iphone 15", Signals: 4},
		{PhoneType: "samsung s24", Signals: 4},
	}
	if !reflect.DeepEqual(metrics.TopDemand, want) {
		t.Fatalf("unexpected ranking: %+v", metrics.TopDemand)
	}
}

func TestDemandRankingStableAcrossRecomputation(t *testing.T) {
	var events []domain.DemandEvent
	for _, pt := range []string{"alpha one", "beta two", "gamma three"} {
		events = append(events, demandEventsFor(testNow, pt, 3)...)
	}
	svc := newTestDemandService(&fakeDemandRepo{events: events}, &fakeExchangeRepo{}, &fakeProductRepo{}, &fakeThreadRepo{})

	first, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.TopDemand, second.TopDemand) {
		t.Fatalf("ranking not stable: %+v vs %+v", first.TopDemand, second.TopDemand)
	}
	want := []DemandRank{
		{PhoneType: "alpha one", Signals: 3},
		{PhoneType: "beta two", Signals: 3},
		{PhoneType: "gamma three", Signals: 3},
	}
	if !reflect.DeepEqual(first.TopDemand, want) {
		t.Fatalf("equal counts must order alphabetically: %+v", first.TopDemand)
	}
}

func TestUnavailableAndRestockTiers(t *testing.T) {
	var events []domain.DemandEvent
	events = append(events, demandEventsFor(testNow, "iphone 15", 9)...)
	events = append(events, demandEventsFor(testNow, "samsung s24", 5)...)
	events = append(events, demandEventsFor(testNow, "tecno spark", 2)...)
	demand := &fakeDemandRepo{events: events}

	products := &fakeProductRepo{products: []domain.Product{
		{ID: "p1", PhoneType: "Samsung S24", StockQuantity: 6},
		{ID: "p2", PhoneType: "iPhone 15", StockQuantity: 0},
		{ID: "p3", PhoneType: "Tecno Spark", StockQuantity: 1, IsArchived: true},
	}}

	svc := newTestDemandService(demand, &fakeExchangeRepo{}, products, &fakeThreadRepo{})
	metrics, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}

	// iphone 15 has an active product with zero stock; tecno spark's only
	// stock is archived. Both are requested but unavailable.
	wantUnavailable := []DemandRank{
		{PhoneType: "iphone 15", Signals: 9},
		{PhoneType: "tecno spark", Signals: 2},
	}
	if !reflect.DeepEqual(metrics.Unavailable, wantUnavailable) {
		t.Fatalf("unexpected unavailable list: %+v", metrics.Unavailable)
	}

	wantRestock := []RestockSuggestion{
		{PhoneType: "iphone 15", Signals: 9, InStock: 0, Tier: "high"},
		{PhoneType: "samsung s24", Signals: 5, InStock: 6, Tier: "medium"},
		{PhoneType: "tecno spark", Signals: 2, InStock: 0, Tier: "low"},
	}
	if !reflect.DeepEqual(metrics.Restock, wantRestock) {
		t.Fatalf("unexpected restock list: %+v", metrics.Restock)
	}
}

func TestStockSnapshotAndContentTopics(t *testing.T) {
	products := &fakeProductRepo{}
	for i := 0; i < 10; i++ {
		products.products = append(products.products, domain.Product{
			ID:            string(rune('a' + i)),
			PhoneType:     "model " + string(rune('a'+i)),
			StockQuantity: i + 1,
		})
	}
	demand := &fakeDemandRepo{events: demandEventsFor(testNow, "iphone 15", 3)}

	svc := newTestDemandService(demand, &fakeExchangeRepo{}, products, &fakeThreadRepo{})
	metrics, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}

	if len(metrics.StockSnapshot) != 8 {
		t.Fatalf("expected snapshot truncated to 8, got %d", len(metrics.StockSnapshot))
	}
	if metrics.StockSnapshot[0].Quantity != 10 {
		t.Fatalf("expected descending quantity, got %+v", metrics.StockSnapshot[0])
	}

	if len(metrics.ContentTopics) != 7 {
		t.Fatalf("expected 7 content topics, got %d", len(metrics.ContentTopics))
	}
	if metrics.ContentTopics[0] != "iphone 15" {
		t.Fatalf("demand-backed topic must lead: %v", metrics.ContentTopics)
	}
	if metrics.ContentTopics[1] != genericTopics[0] {
		t.Fatalf("expected generic padding after demand topics: %v", metrics.ContentTopics)
	}
}

func TestConversationCounts(t *testing.T) {
	todayStart, _ := timewindow.NewResolver(3).DayBoundaries(testNow)
	threads := &fakeThreadRepo{threads: []domain.Thread{
		{CreatedAt: todayStart.Add(time.Hour), FirstMessageAt: timePtr(todayStart.Add(time.Hour))},
		{CreatedAt: testNow.Add(-3 * 24 * time.Hour)},
		{CreatedAt: testNow.Add(-20 * 24 * time.Hour), FirstMessageAt: timePtr(testNow.Add(-20 * 24 * time.Hour))},
		{CreatedAt: testNow.Add(-40 * 24 * time.Hour)},
	}}

	svc := newTestDemandService(&fakeDemandRepo{}, &fakeExchangeRepo{}, &fakeProductRepo{}, threads)
	metrics, err := svc.ComputeDemandMetrics(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}

	if metrics.ConversationsToday.Total != 1 || metrics.ConversationsToday.FirstTime != 1 {
		t.Fatalf("unexpected today counts: %+v", metrics.ConversationsToday)
	}
	if metrics.ConversationsWeek.Total != 2 {
		t.Fatalf("expected 2 this week, got %+v", metrics.ConversationsWeek)
	}
	if metrics.ConversationsMonth.Total != 3 || metrics.ConversationsMonth.FirstTime != 2 {
		t.Fatalf("unexpected month counts: %+v", metrics.ConversationsMonth)
	}
}
