package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Money is a price value stored in the product JSON document. Historical
// documents carry prices as numbers, numeric strings, or null; decoding is
// tolerant and coerces anything unparseable to zero.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*m = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Money(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

// ISOTime handles the timestamps found in the product document: RFC 3339,
// naive ISO 8601 without a zone, or absent. Unparseable values decode to the
// zero time instead of failing the whole document.
type ISOTime struct {
	time.Time
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Product is an item in the solidarity store. Products live in a JSON
// document on disk rather than in the database; field names match the
// legacy document keys.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Price       Money   `json:"preco"`
	Shipping    Money   `json:"frete"`
	ImagePath   string  `json:"imagem"`
	VideoPath   string  `json:"video,omitempty"`
	CreatedAt   ISOTime `json:"created_at"`
}
