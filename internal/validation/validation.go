// Package validation validates request payloads and uploaded file names,
// collecting errors per field.
package validation

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"esperanca/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AllowedImageExtensions are accepted for photo uploads.
var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AllowedVideoExtensions are accepted for testimonial and store videos.
var AllowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// disallowedExtensions are rejected for every upload category, including the
// otherwise-permissive document uploads.
var disallowedExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true, ".cpl": true,
	".js": true, ".jse": true, ".msi": true, ".msp": true, ".msc": true,
	".pif": true, ".ps1": true, ".reg": true, ".scr": true, ".sh": true,
	".vb": true, ".vbe": true, ".vbs": true,
}

// Struct validates a tagged payload struct and translates failures into a
// field-keyed AppError with PT-BR messages.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.NewInternalError(err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldName(fe)] = messageFor(fe)
	}
	return models.NewFieldErrors(fields)
}

func fieldName(fe validator.FieldError) string {
	// Prefer the JSON-ish lowercase name so errors line up with payload keys.
	return strings.ToLower(fe.Field())
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo é obrigatório."
	case "max":
		return fmt.Sprintf("Use no máximo %s caracteres.", fe.Param())
	case "min":
		return fmt.Sprintf("Use pelo menos %s caracteres.", fe.Param())
	case "email":
		return "Informe um e-mail válido."
	case "url":
		return "Informe uma URL válida."
	case "gte", "min_num":
		return "Informe um valor maior ou igual a zero."
	default:
		return "Valor inválido."
	}
}

// CheckImageFilename rejects anything that is not a jpg/jpeg/png upload.
func CheckImageFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedImageExtensions[ext] {
		return models.NewFieldErrors(map[string]string{
			"imagem": "Somente imagens são permitidas.",
		})
	}
	return nil
}

// CheckVideoFilename rejects anything outside the accepted video formats.
func CheckVideoFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedVideoExtensions[ext] {
		return models.NewFieldErrors(map[string]string{
			"video": "Somente vídeos são permitidos.",
		})
	}
	return nil
}

// CheckDocumentFilename accepts any extension except the executable
// blacklist. Transparency documents are typically PDFs but the original
// system never restricted them to one format.
func CheckDocumentFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || disallowedExtensions[ext] {
		return models.NewFieldErrors(map[string]string{
			"arquivo": "Este tipo de arquivo não é permitido.",
		})
	}
	return nil
}

// ParseDecimal parses Brazilian-formatted decimals ("1.234,56") as well as
// plain values ("1234.56"). Empty input parses to zero. Errors are reported
// against the given form field.
func ParseDecimal(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}

	normalized := trimmed
	if strings.Contains(normalized, ",") {
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, models.NewFieldErrors(map[string]string{
			field: "Informe um valor numérico válido.",
		})
	}
	if value < 0 {
		return 0, models.NewFieldErrors(map[string]string{
			field: "Informe um valor maior ou igual a zero.",
		})
	}
	return value, nil
}
