package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

func TestPredictionRepository_UpsertKeepsIdentity(t *testing.T) {
	repo := NewPredictionRepository()
	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(t.Context(), prediction.Prediction{
		ID: "p-1", Mode: prediction.ModeLive, UserID: "u-1", FixtureID: "fx-1", Week: 1,
		Choice: prediction.ChoiceHome, CreatedAt: created, UpdatedAt: created,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.Upsert(t.Context(), prediction.Prediction{
		ID: "p-2", Mode: prediction.ModeLive, UserID: "u-1", FixtureID: "fx-1", Week: 1,
		Choice: prediction.ChoiceAway, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID || !second.CreatedAt.Equal(created) {
		t.Fatalf("identity must survive overwrite: %+v", second)
	}
	items, _ := repo.ListByUser(t.Context(), prediction.ModeLive, "u-1")
	if len(items) != 1 || items[0].Choice != prediction.ChoiceAway {
		t.Fatalf("expected one overwritten prediction, got %+v", items)
	}
}

func TestPredictionRepository_UpsertRejectsPickWithdrawal(t *testing.T) {
	repo := NewPredictionRepository()
	at := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	item := prediction.Prediction{
		ID: "p-1", Mode: prediction.ModeTest, UserID: "u-1", FixtureID: "fx-1", Week: 1,
		Choice: prediction.ChoiceSkip, CreatedAt: at, UpdatedAt: at,
	}

	if _, err := repo.Upsert(t.Context(), item); err != nil {
		t.Fatalf("store skip: %v", err)
	}
	item.Choice = prediction.ChoiceDraw
	if _, err := repo.Upsert(t.Context(), item); err != nil {
		t.Fatalf("skip to pick must be allowed: %v", err)
	}
	item.Choice = prediction.ChoiceSkip
	if _, err := repo.Upsert(t.Context(), item); !errors.Is(err, prediction.ErrPickWithdrawn) {
		t.Fatalf("expected ErrPickWithdrawn, got %v", err)
	}

	stored, _, _ := repo.Get(t.Context(), prediction.ModeTest, "u-1", "fx-1")
	if stored.Choice != prediction.ChoiceDraw {
		t.Fatalf("stored pick must be unchanged, got %s", stored.Choice)
	}
}

func TestPredictionRepository_DeleteByUserIsScopedToMode(t *testing.T) {
	repo := NewPredictionRepository()
	for _, item := range []prediction.Prediction{
		{ID: "a", Mode: prediction.ModeLive, UserID: "u-1", FixtureID: "fx-1", Week: 1, Choice: prediction.ChoiceHome},
		{ID: "b", Mode: prediction.ModeLive, UserID: "u-1", FixtureID: "fx-2", Week: 2, Choice: prediction.ChoiceSkip},
		{ID: "c", Mode: prediction.ModeTest, UserID: "u-1", FixtureID: "fx-1", Week: 1, Choice: prediction.ChoiceDraw},
		{ID: "d", Mode: prediction.ModeLive, UserID: "u-2", FixtureID: "fx-1", Week: 1, Choice: prediction.ChoiceAway},
	} {
		if _, err := repo.Upsert(t.Context(), item); err != nil {
			t.Fatalf("upsert %s: %v", item.ID, err)
		}
	}

	removed, err := repo.DeleteByUser(t.Context(), prediction.ModeLive, "u-1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 2 {
		t.Fatalf("unexpected removed count: %d", removed)
	}

	testItems, _ := repo.ListByUser(t.Context(), prediction.ModeTest, "u-1")
	if len(testItems) != 1 {
		t.Fatalf("test mode data must survive live reset, got %d", len(testItems))
	}
	other, _ := repo.ListByUser(t.Context(), prediction.ModeLive, "u-2")
	if len(other) != 1 {
		t.Fatalf("other users must be untouched, got %d", len(other))
	}
}
