package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"esperanca/internal/models"
	"esperanca/internal/repository"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CatalogItem is a product prepared for the public store page: display slug,
// derived total and formatted prices.
type CatalogItem struct {
	models.Product
	DisplaySlug  string  `json:"display_slug"`
	Total        float64 `json:"total"`
	PriceDisplay string  `json:"price_display"`
	TotalDisplay string  `json:"total_display"`
}

// CatalogService prepares store products for public display.
type CatalogService struct {
	products repository.ProductRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

var (
	stripMarks      = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug: accents stripped, lowercased,
// non-alphanumeric runs collapsed to single hyphens. Empty input yields an
// empty slug.
func Slugify(name string) string {
	ascii, _, err := transform.String(stripMarks, name)
	if err != nil {
		ascii = name
	}
	slug := strings.ToLower(ascii)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// DisplaySlug derives the store URL slug from a product name. The result is
// not guaranteed unique; products with equivalent names collide.
func DisplaySlug(name string) string {
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return "produto"
}

// FormatCurrency renders a value as Brazilian currency: "R$ 1.234,56".
func FormatCurrency(value float64) string {
	if value < 0 {
		value = 0
	}
	cents := int64(value*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("R$ %s,%02d", grouped.String(), frac)
}

// List returns all products prepared for display, preserving store order.
func (s *CatalogService) List(ctx context.Context) ([]CatalogItem, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, len(products))
	for _, product := range products {
		items = append(items, s.decorate(product))
	}
	return items, nil
}

// GetByDisplaySlug finds the first product whose derived slug matches.
// Collisions resolve to the earliest entry in the document.
func (s *CatalogService) GetByDisplaySlug(ctx context.Context, slug string) (*CatalogItem, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		if DisplaySlug(product.Name) == slug {
			item := s.decorate(product)
			return &item, nil
		}
	}
	return nil, models.NewNotFoundError("Produto", slug)
}

func (s *CatalogService) decorate(product models.Product) CatalogItem {
	total := float64(product.Price) + float64(product.Shipping)
	return CatalogItem{
		Product:      product,
		DisplaySlug:  DisplaySlug(product.Name),
		Total:        total,
		PriceDisplay: FormatCurrency(float64(product.Price)),
		TotalDisplay: FormatCurrency(total),
	}
}
