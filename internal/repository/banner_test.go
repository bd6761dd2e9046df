package repository

import (
	"context"
	"testing"
	"time"

	"esperanca/internal/models"
)

func TestBannerRepositoryListOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	banners := []models.Banner{
		{Title: "Campanha antiga", Order: 1, ImagePath: "banners/a.jpg", CreatedAt: base},
		{Title: "Campanha nova", Order: 1, ImagePath: "banners/b.jpg", CreatedAt: base.Add(time.Hour)},
		{Title: "Destaque", Order: 0, ImagePath: "banners/c.jpg", CreatedAt: base},
	}
	for i := range banners {
		if err := repo.Create(ctx, &banners[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(listed))
	}

	want := []string{"Destaque", "Campanha nova", "Campanha antiga"}
	for i, title := range want {
		if listed[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, listed[i].Title)
		}
	}
}
