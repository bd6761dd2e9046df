package content

import "testing"

func TestDecodeContactPayloadPlainText(t *testing.T) {
	info := DecodeContactPayload("Rua das Flores, 123 - ligue para nós!")
	if !info.IsZero() {
		t.Fatalf("expected zero value for plain text, got %+v", info)
	}
}

func TestDecodeContactPayloadJSONArray(t *testing.T) {
	info := DecodeContactPayload(`["address", "phone"]`)
	if !info.IsZero() {
		t.Fatalf("expected zero value for JSON array, got %+v", info)
	}
}

func TestDecodeContactPayloadUnknownKeysOnly(t *testing.T) {
	info := DecodeContactPayload(`{"foo": "bar", "baz": 42}`)
	if !info.IsZero() {
		t.Fatalf("expected zero value for unknown keys, got %+v", info)
	}
}

func TestDecodeContactPayloadRecognizedFields(t *testing.T) {
	raw := `{"address": "  Rua das Flores, 123  ", "phone": "(11) 99999-0000", "instagram": "https://instagram.com/doceesperanca"}`
	info := DecodeContactPayload(raw)
	if info.IsZero() {
		t.Fatal("expected decoded fields, got zero value")
	}
	if info.Address != "Rua das Flores, 123" {
		t.Errorf("expected trimmed address, got %q", info.Address)
	}
	if info.Phone != "(11) 99999-0000" {
		t.Errorf("unexpected phone %q", info.Phone)
	}
	if info.Instagram != "https://instagram.com/doceesperanca" {
		t.Errorf("unexpected instagram %q", info.Instagram)
	}
}

func TestDecodeContactPayloadTruncatedJSON(t *testing.T) {
	info := DecodeContactPayload(`{"address": "Rua das Flo`)
	if !info.IsZero() {
		t.Fatalf("expected zero value for truncated JSON, got %+v", info)
	}
}

func TestMergeDefaults(t *testing.T) {
	defaults := ContactInfo{
		Address: "Rua Padrão, 1",
		Phone:   "(11) 0000-0000",
	}
	info := ContactInfo{Phone: "(11) 98888-7777"}

	merged := info.MergeDefaults(defaults)
	if merged.Phone != "(11) 98888-7777" {
		t.Errorf("stored value should win, got %q", merged.Phone)
	}
	if merged.Address != "Rua Padrão, 1" {
		t.Errorf("default should fill empty field, got %q", merged.Address)
	}
}

func TestIsReservedSlug(t *testing.T) {
	if !IsReservedSlug("inicio") {
		t.Error("inicio should be reserved")
	}
	if !IsReservedSlug("placeholder_galeria") {
		t.Error("placeholder_galeria should be reserved")
	}
	if IsReservedSlug("projeto-horta") {
		t.Error("projeto-horta should not be reserved")
	}
}
