package domain

import (
	"testing"
	"time"
)

var classifyNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestClassifyHotOnRecentCustomerMessage(t *testing.T) {
	at := classifyNow.Add(-time.Hour)
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt:             classifyNow.Add(-72 * time.Hour),
		LastCustomerMessageAt: &at,
	})
	if tier != EngagementHot {
		t.Fatalf("recent message beats old age, got %s", tier)
	}
}

func TestClassifyHotOnBudgetKeyword(t *testing.T) {
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt:        classifyNow.Add(-48 * time.Hour),
		HasBudgetKeyword: true,
	})
	if tier != EngagementHot {
		t.Fatalf("budget keyword must classify hot, got %s", tier)
	}
}

func TestClassifyHotValueThresholdExclusive(t *testing.T) {
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt:        classifyNow.Add(-time.Hour),
		PriorityValueETB: 50_000,
	})
	if tier == EngagementHot {
		t.Fatal("value of exactly 50000 must not be hot")
	}

	tier = ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt:        classifyNow.Add(-time.Hour),
		PriorityValueETB: 50_001,
	})
	if tier != EngagementHot {
		t.Fatalf("value above 50000 must be hot, got %s", tier)
	}
}

func TestClassifyWarmSignals(t *testing.T) {
	cases := []struct {
		name    string
		signals EngagementSignals
	}{
		{"clicked continue", EngagementSignals{CreatedAt: classifyNow.Add(-48 * time.Hour), ClickedContinue: true}},
		{"customer messaged", EngagementSignals{CreatedAt: classifyNow.Add(-48 * time.Hour), HasCustomerMessaged: true}},
		{"admin replied", EngagementSignals{CreatedAt: classifyNow.Add(-48 * time.Hour), HasAdminReplied: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tier := ClassifyEngagement(classifyNow, tc.signals); tier != EngagementWarm {
				t.Fatalf("expected warm, got %s", tier)
			}
		})
	}
}

func TestClassifyColdWhenOldAndSilent(t *testing.T) {
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt: classifyNow.Add(-25 * time.Hour),
	})
	if tier != EngagementCold {
		t.Fatalf("expected cold, got %s", tier)
	}
}

func TestClassifyYoungDefaultIsWarm(t *testing.T) {
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt: classifyNow.Add(-3 * time.Hour),
	})
	if tier != EngagementWarm {
		t.Fatalf("expected warm default for a young entity, got %s", tier)
	}
}

func TestClassifyStaleCustomerMessageNotHot(t *testing.T) {
	at := classifyNow.Add(-3 * time.Hour)
	tier := ClassifyEngagement(classifyNow, EngagementSignals{
		CreatedAt:             classifyNow.Add(-30 * time.Hour),
		LastCustomerMessageAt: &at,
		HasCustomerMessaged:   true,
	})
	if tier != EngagementWarm {
		t.Fatalf("message outside the 2h window falls through to warm, got %s", tier)
	}
}
