package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain", input: "  Projeto social  ", expected: "Projeto social"},
		{name: "html stripped", input: "<p>Olá <strong>mundo</strong></p>", expected: "Olá mundo"},
		{name: "whitespace collapsed", input: "a\n\n  b\t c", expected: "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestSummarizeText(t *testing.T) {
	long := strings.Repeat("palavra ", 50)

	t.Run("first non-empty candidate wins", func(t *testing.T) {
		got := SummarizeText(155, "", "<p>Resumo da página</p>", "outro")
		assert.Equal(t, "Resumo da página", got)
	})

	t.Run("long text is shortened with ellipsis", func(t *testing.T) {
		got := SummarizeText(50, long)
		assert.True(t, strings.HasSuffix(got, "…"), "got %q", got)
		assert.LessOrEqual(t, len([]rune(got)), 50)
	})

	t.Run("all empty yields empty", func(t *testing.T) {
		assert.Equal(t, "", SummarizeText(155, "", "  "))
	})
}

func TestBuildMetadataDeduplicatesKeywords(t *testing.T) {
	meta := BuildMetadata(MetadataInput{
		Title:       "Galeria",
		Description: "Fotos do projeto",
		Keywords:    []string{"galeria", "Recife", "fotos"},
	})

	assert.Equal(t, "Galeria", meta.OGTitle)
	assert.Equal(t, "pt_BR", meta.OGLocale)
	// "Recife" is already in the default pool; it must appear only once.
	assert.Equal(t, 1, strings.Count(meta.Keywords, "Recife"))
	assert.Contains(t, meta.Keywords, "galeria")
}

func TestBuildOrganizationSchema(t *testing.T) {
	schema := BuildOrganizationSchema(OrganizationSchemaInput{
		SiteName: DefaultSiteName,
		BaseURL:  "https://doceesperanca.org",
		Phone:    "(81) 3333-0000",
		Address:  "Rua do Sol, 45\nRecife\nPE",
		SameAs:   []string{"https://instagram.com/doce", ""},
	})

	assert.Equal(t, "NGO", schema["@type"])
	address, ok := schema["address"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Rua do Sol, 45", address["streetAddress"])
	assert.Equal(t, "Recife", address["addressLocality"])
	assert.Equal(t, "PE", address["addressRegion"])
	assert.Equal(t, []string{"https://instagram.com/doce"}, schema["sameAs"])
	assert.NotNil(t, schema["contactPoint"])
}

func TestParseISODatetime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "with zone", input: "2024-03-01T10:20:30+03:00", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.FixedZone("", 3*3600)), ok: true},
		{name: "naive with micros", input: "2024-03-01T10:20:30.123456", want: time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.UTC), ok: true},
		{name: "naive", input: "2024-03-01T10:20:30", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), ok: true},
		{name: "zulu", input: "2024-03-01T10:20:30Z", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), ok: true},
		{name: "garbage", input: "ontem", ok: false},
		{name: "empty", input: "  ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseISODatetime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}
