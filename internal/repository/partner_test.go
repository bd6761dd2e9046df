package repository

import (
	"context"
	"testing"
	"time"

	"esperanca/internal/models"
)

func TestPartnerRepositoryListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPartnerRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)
	partners := []models.Partner{
		{Name: "Aurora Doações", Slug: "aurora-doacoes", CreatedAt: base},
		{Name: "Zzz Recentes", Slug: "zzz-recentes", CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Mercado do Bairro", Slug: "mercado-do-bairro", CreatedAt: base.Add(time.Hour)},
	}
	for i := range partners {
		if err := repo.Create(ctx, &partners[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 partners, got %d", len(listed))
	}

	want := []string{"Zzz Recentes", "Mercado do Bairro", "Aurora Doações"}
	for i, name := range want {
		if listed[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, listed[i].Name)
		}
	}
}

func TestVolunteerRepositoryListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVolunteerRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)
	volunteers := []models.Volunteer{
		{Name: "Ana", CreatedAt: base},
		{Name: "Zuleide", CreatedAt: base.Add(time.Hour)},
	}
	for i := range volunteers {
		if err := repo.Create(ctx, &volunteers[i]); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Zuleide" {
		t.Fatalf("expected the newest volunteer first, got %+v", listed)
	}
}
