package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"esperanca/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a positive numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Identificador inválido.")
	}
	return uint(id), nil
}

// formFile reads an optional multipart upload. When the field is absent it
// returns an empty filename and no error; callers decide whether the file is
// required.
func (s *Server) formFile(c *fiber.Ctx, field string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		// fasthttp reports a missing field the same way as a broken
		// form, so treat both as "no file sent".
		return "", nil, nil
	}
	if header.Size > int64(s.config.MaxUploadSizeBytes()) {
		return "", nil, models.NewFieldErrors(map[string]string{
			field: fmt.Sprintf("O arquivo excede o limite de %d MB.", s.config.MaxUploadSizeMB),
		})
	}
	content, err := readMultipart(header)
	if err != nil {
		return "", nil, models.NewInternalError(err)
	}
	return header.Filename, content, nil
}

// requireFormFile is formFile for fields that must be present.
func (s *Server) requireFormFile(c *fiber.Ctx, field, message string) (string, []byte, error) {
	name, content, err := s.formFile(c, field)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		return "", nil, models.NewFieldErrors(map[string]string{field: message})
	}
	return name, content, nil
}

func readMultipart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// formValue reads and trims a form field.
func formValue(c *fiber.Ctx, field string) string {
	return strings.TrimSpace(c.FormValue(field))
}

// cleanupUpload best-effort deletes a stored file after a later step failed.
func (s *Server) cleanupUpload(c *fiber.Ctx, relPath string) {
	if relPath == "" {
		return
	}
	if err := s.uploadSvc.Delete(c.UserContext(), relPath); err != nil {
		s.logger.WarnContext(c.UserContext(), "failed to clean up upload",
			"path", relPath, "error", err)
	}
}

func created(c *fiber.Ctx, body any) error {
	return c.Status(http.StatusCreated).JSON(body)
}
