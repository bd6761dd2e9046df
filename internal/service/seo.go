package service

import (
	"regexp"
	"strings"
	"time"
)

// Site-wide defaults used when a page supplies no metadata of its own.
const (
	DefaultSiteName        = "Doce Esperança"
	DefaultSiteDescription = "Projeto social de Recife que transforma doações em oportunidades e apoia " +
		"famílias com ações de solidariedade, voluntariado e transparência."
)

// DefaultKeywords seed every page's keyword list.
var DefaultKeywords = []string{
	"Doce Esperança",
	"ONG Doce Esperança",
	"solidariedade",
	"projetos sociais",
	"doações",
	"voluntariado",
	"impacto social",
	"Recife",
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText strips HTML tags and collapses whitespace.
func CleanText(value string) string {
	if value == "" {
		return ""
	}
	stripped := htmlTagRe.ReplaceAllString(value, " ")
	normalized := whitespaceRe.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(normalized)
}

// SummarizeText returns the first non-empty candidate cleaned and shortened
// to at most width characters, cutting on a word boundary with an ellipsis.
func SummarizeText(width int, candidates ...string) string {
	if width <= 0 {
		width = 155
	}
	for _, candidate := range candidates {
		cleaned := CleanText(candidate)
		if cleaned != "" {
			return shorten(cleaned, width)
		}
	}
	return ""
}

// shorten trims to width runes on a word boundary, appending "…" when text
// was dropped.
func shorten(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	const placeholder = "…"
	limit := width - len([]rune(placeholder))
	if limit < 1 {
		limit = 1
	}

	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + placeholder
}

// Metadata is the SEO payload attached to public page responses.
type Metadata struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Keywords       string         `json:"keywords,omitempty"`
	Canonical      string         `json:"canonical,omitempty"`
	OGTitle        string         `json:"og_title"`
	OGDescription  string         `json:"og_description"`
	OGType         string         `json:"og_type"`
	OGImage        string         `json:"og_image,omitempty"`
	OGURL          string         `json:"og_url,omitempty"`
	OGLocale       string         `json:"og_locale"`
	TwitterCard    string         `json:"twitter_card"`
	StructuredData map[string]any `json:"structured_data,omitempty"`
}

// MetadataInput carries the page-specific parts of BuildMetadata.
type MetadataInput struct {
	Title          string
	Description    string
	Canonical      string
	Keywords       []string
	OGImage        string
	StructuredData map[string]any
}

// BuildMetadata assembles page metadata with the site defaults filled in. The
// default keyword set is always prepended; duplicates are removed
// case-insensitively, first occurrence wins.
func BuildMetadata(in MetadataInput) Metadata {
	pool := make([]string, 0, len(DefaultKeywords)+len(in.Keywords))
	pool = append(pool, DefaultKeywords...)
	pool = append(pool, in.Keywords...)

	seen := make(map[string]bool, len(pool))
	deduped := make([]string, 0, len(pool))
	for _, kw := range pool {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lowered := strings.ToLower(kw)
		if seen[lowered] {
			continue
		}
		seen[lowered] = true
		deduped = append(deduped, kw)
	}

	return Metadata{
		Title:          in.Title,
		Description:    in.Description,
		Keywords:       strings.Join(deduped, ", "),
		Canonical:      in.Canonical,
		OGTitle:        in.Title,
		OGDescription:  in.Description,
		OGType:         "website",
		OGImage:        in.OGImage,
		OGURL:          in.Canonical,
		OGLocale:       "pt_BR",
		TwitterCard:    "summary_large_image",
		StructuredData: in.StructuredData,
	}
}

// OrganizationSchemaInput feeds BuildOrganizationSchema.
type OrganizationSchemaInput struct {
	SiteName    string
	BaseURL     string
	LogoURL     string
	Description string
	Email       string
	Phone       string
	Address     string
	SameAs      []string
}

// BuildOrganizationSchema returns Schema.org NGO metadata. The address is
// split on line breaks: street, locality, region.
func BuildOrganizationSchema(in OrganizationSchemaInput) map[string]any {
	schema := map[string]any{
		"@context": "https://schema.org",
		"@type":    "NGO",
		"name":     in.SiteName,
		"url":      in.BaseURL,
	}
	if in.Description != "" {
		schema["description"] = in.Description
	}
	if in.LogoURL != "" {
		schema["logo"] = in.LogoURL
	}
	if in.Email != "" {
		schema["email"] = in.Email
	}
	if in.Phone != "" {
		schema["telephone"] = in.Phone
	}

	if in.Address != "" {
		var lines []string
		for _, line := range strings.Split(in.Address, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) > 0 {
			address := map[string]any{"@type": "PostalAddress", "streetAddress": lines[0]}
			if len(lines) >= 2 {
				address["addressLocality"] = lines[1]
			}
			if len(lines) >= 3 {
				address["addressRegion"] = lines[2]
			}
			schema["address"] = address
		}
	}

	var sameAs []string
	for _, link := range in.SameAs {
		if link != "" {
			sameAs = append(sameAs, link)
		}
	}
	if len(sameAs) > 0 {
		schema["sameAs"] = sameAs
	}

	if in.Phone != "" || in.Email != "" {
		contactPoint := map[string]any{"@type": "ContactPoint", "contactType": "Customer Service"}
		if in.Phone != "" {
			contactPoint["telephone"] = in.Phone
		}
		if in.Email != "" {
			contactPoint["email"] = in.Email
		}
		schema["contactPoint"] = []map[string]any{contactPoint}
	}

	return schema
}

var isoDatetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISODatetime parses ISO 8601 timestamps with or without fractional
// seconds and zone. Returns the zero time when nothing matches.
func ParseISODatetime(value string) (time.Time, bool) {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(candidate, "Z") {
		if parsed, err := time.Parse(time.RFC3339Nano, candidate); err == nil {
			return parsed, true
		}
		candidate = strings.TrimSuffix(candidate, "Z")
	}
	for _, layout := range isoDatetimeLayouts {
		if parsed, err := time.Parse(layout, candidate); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
