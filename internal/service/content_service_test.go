package service

import (
	"context"
	"testing"

	"esperanca/internal/content"
	"esperanca/internal/database"
	"esperanca/internal/models"
	"esperanca/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testTextRepo(t *testing.T) repository.TextRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repository.NewTextRepository(db)
}

func TestResolveMergesDefaults(t *testing.T) {
	repo := testTextRepo(t)
	svc := NewContentService(repo)
	ctx := context.Background()

	// One reserved slug with a record, one reserved without, one free slug
	// without a record.
	stored := models.Text{Title: "Nossa história", Slug: "sobre", Content: "Fundada em 2015."}
	if err := repo.Create(ctx, &stored); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resolved, err := svc.Resolve(ctx, "sobre", "missao", "pagina-livre")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	sobre, ok := resolved["sobre"]
	if !ok {
		t.Fatal("sobre should resolve")
	}
	if sobre.Title != "Nossa história" || sobre.Body != "Fundada em 2015." {
		t.Errorf("stored record should win: %+v", sobre)
	}

	missao, ok := resolved["missao"]
	if !ok {
		t.Fatal("reserved slug without record should still resolve")
	}
	if missao.Title != "Nossa missão" {
		t.Errorf("expected registry default title, got %q", missao.Title)
	}
	if missao.Body != content.Placeholder {
		t.Errorf("expected placeholder body, got %q", missao.Body)
	}

	if _, ok := resolved["pagina-livre"]; ok {
		t.Error("unknown slug without record should be absent")
	}
}

func TestResolveEmptyBodyFallsBackToPlaceholder(t *testing.T) {
	repo := testTextRepo(t)
	svc := NewContentService(repo)
	ctx := context.Background()

	stored := models.Text{Title: "Princípios", Slug: "principios", Content: ""}
	if err := repo.Create(ctx, &stored); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	resolved, err := svc.Resolve(ctx, "principios")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved["principios"].Body != content.Placeholder {
		t.Errorf("empty body should resolve to placeholder, got %q", resolved["principios"].Body)
	}
}

func TestResolveContactStructured(t *testing.T) {
	repo := testTextRepo(t)
	svc := NewContentService(repo)
	ctx := context.Background()

	stored := models.Text{
		Title:   "Fale conosco",
		Slug:    "contato",
		Summary: "contato@doceesperanca.org",
		Content: `{"phone": "(81) 3333-0000", "address": "Rua do Sol, 45\nRecife"}`,
	}
	if err := repo.Create(ctx, &stored); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	card, err := svc.ResolveContact(ctx)
	if err != nil {
		t.Fatalf("ResolveContact failed: %v", err)
	}
	if card.Structured == nil {
		t.Fatal("expected structured branch")
	}
	if card.PlainText != "" {
		t.Error("structured card should not carry plain text")
	}
	if card.Structured.Phone != "(81) 3333-0000" {
		t.Errorf("unexpected phone %q", card.Structured.Phone)
	}
	if card.Email != "contato@doceesperanca.org" {
		t.Errorf("summary should surface as email, got %q", card.Email)
	}
}

func TestResolveContactPlainText(t *testing.T) {
	repo := testTextRepo(t)
	svc := NewContentService(repo)
	ctx := context.Background()

	stored := models.Text{Title: "Fale conosco", Slug: "contato", Content: "Ligue para (81) 3333-0000."}
	if err := repo.Create(ctx, &stored); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	card, err := svc.ResolveContact(ctx)
	if err != nil {
		t.Fatalf("ResolveContact failed: %v", err)
	}
	if card.Structured != nil {
		t.Fatal("free text should resolve to the plain branch")
	}
	if card.PlainText != "Ligue para (81) 3333-0000." {
		t.Errorf("unexpected plain text %q", card.PlainText)
	}
}
