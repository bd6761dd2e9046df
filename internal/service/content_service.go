package service

import (
	"context"

	"esperanca/internal/content"
	"esperanca/internal/models"
	"esperanca/internal/repository"
)

// ResolvedSection carries everything a page needs to render one institutional
// slot: the stored record when present, plus effective title and body that
// fall back to registry defaults and the placeholder string.
type ResolvedSection struct {
	Slug    string       `json:"slug"`
	Title   string       `json:"title"`
	Body    string       `json:"body"`
	Summary string       `json:"summary,omitempty"`
	Image   string       `json:"image,omitempty"`
	Text    *models.Text `json:"-"`
}

// ContactCard is the decoded contact section. Exactly one branch is set:
// Structured when the stored body is a recognizable JSON payload, PlainText
// otherwise. Decoding happens here once so downstream code never re-parses.
type ContactCard struct {
	Structured *content.ContactInfo `json:"structured,omitempty"`
	PlainText  string               `json:"plain_text,omitempty"`
	Email      string               `json:"email,omitempty"`
}

// ContentService resolves institutional sections for public pages and the
// admin panel.
type ContentService struct {
	texts repository.TextRepository
}

// NewContentService returns a new ContentService.
func NewContentService(texts repository.TextRepository) *ContentService {
	return &ContentService{texts: texts}
}

// Resolve fetches the given slugs and merges each with its registry defaults.
// Reserved slugs without a record (or with an empty body) still resolve to a
// renderable section; unknown slugs resolve only when a record exists.
func (s *ContentService) Resolve(ctx context.Context, slugs ...string) (map[string]ResolvedSection, error) {
	stored, err := s.texts.CollectBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]ResolvedSection, len(slugs))
	for _, slug := range slugs {
		section, reserved := content.SectionMap[slug]
		record, exists := stored[slug]

		if !exists && !reserved {
			continue
		}

		resolved := ResolvedSection{Slug: slug}
		if exists {
			r := record
			resolved.Text = &r
			resolved.Title = record.Title
			resolved.Body = record.Content
			resolved.Summary = record.Summary
			resolved.Image = record.ImagePath
		}
		if resolved.Title == "" && reserved {
			resolved.Title = section.DefaultTitle
		}
		if resolved.Body == "" {
			resolved.Body = content.Placeholder
		}
		out[slug] = resolved
	}
	return out, nil
}

// ResolveContact loads the "contato" section and decodes its body once into a
// tagged ContactCard. The section summary doubles as the contact email.
func (s *ContentService) ResolveContact(ctx context.Context) (ContactCard, error) {
	record, err := s.texts.GetBySlug(ctx, "contato")
	if err != nil {
		return ContactCard{}, err
	}

	card := ContactCard{}
	if record == nil {
		return card, nil
	}
	card.Email = record.Summary

	if info := content.DecodeContactPayload(record.Content); !info.IsZero() {
		card.Structured = &info
		return card, nil
	}
	card.PlainText = record.Content
	return card, nil
}

// EnsureReserved seeds missing reserved sections so admin listings always
// show the full registry.
func (s *ContentService) EnsureReserved(ctx context.Context) error {
	return s.texts.EnsureReserved(ctx)
}
