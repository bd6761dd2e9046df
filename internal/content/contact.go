package content

import (
	"encoding/json"
	"strings"
)

// ContactInfo is the structured payload optionally stored in the "contato"
// section's content field. Legacy installations stored free text there, so
// decoding is best-effort: anything that is not a JSON object with at least
// one recognized field decodes to the zero value.
type ContactInfo struct {
	SupportText string `json:"support_text"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Facebook    string `json:"facebook"`
	Instagram   string `json:"instagram"`
	YouTube     string `json:"youtube"`
	WhatsApp    string `json:"whatsapp"`
	MapEmbed    string `json:"map"`
	Iframe      string `json:"iframe"`
}

// IsZero reports whether no field carries a value.
func (c ContactInfo) IsZero() bool {
	return c == ContactInfo{}
}

// MergeDefaults fills empty fields from the given defaults.
func (c ContactInfo) MergeDefaults(defaults ContactInfo) ContactInfo {
	pick := func(value, fallback string) string {
		if value != "" {
			return value
		}
		return fallback
	}
	return ContactInfo{
		SupportText: pick(c.SupportText, defaults.SupportText),
		Description: pick(c.Description, defaults.Description),
		Address:     pick(c.Address, defaults.Address),
		Phone:       pick(c.Phone, defaults.Phone),
		Facebook:    pick(c.Facebook, defaults.Facebook),
		Instagram:   pick(c.Instagram, defaults.Instagram),
		YouTube:     pick(c.YouTube, defaults.YouTube),
		WhatsApp:    pick(c.WhatsApp, defaults.WhatsApp),
		MapEmbed:    pick(c.MapEmbed, defaults.MapEmbed),
		Iframe:      pick(c.Iframe, defaults.Iframe),
	}
}

// DecodeContactPayload parses the contact section content. Free text, JSON
// arrays, truncated JSON and objects with no recognized field all yield the
// zero value; callers fall back to rendering the raw content in that case.
func DecodeContactPayload(raw string) ContactInfo {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return ContactInfo{}
	}
	var info ContactInfo
	if err := json.Unmarshal([]byte(trimmed), &info); err != nil {
		return ContactInfo{}
	}
	info.SupportText = strings.TrimSpace(info.SupportText)
	info.Description = strings.TrimSpace(info.Description)
	info.Address = strings.TrimSpace(info.Address)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Facebook = strings.TrimSpace(info.Facebook)
	info.Instagram = strings.TrimSpace(info.Instagram)
	info.YouTube = strings.TrimSpace(info.YouTube)
	info.WhatsApp = strings.TrimSpace(info.WhatsApp)
	info.MapEmbed = strings.TrimSpace(info.MapEmbed)
	info.Iframe = strings.TrimSpace(info.Iframe)
	return info
}
