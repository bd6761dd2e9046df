package server

import (
	"time"

	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type transparencyPayload struct {
	Title       string `validate:"required,max=255"`
	Description string
}

// ListTransparencyDocs returns accountability documents, newest first.
func (s *Server) ListTransparencyDocs(c *fiber.Ctx) error {
	docs, err := s.transparencyRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"docs": docs})
}

// CreateTransparencyDoc publishes a document. The file is stored as-is, with
// only the executable blacklist applied.
func (s *Server) CreateTransparencyDoc(c *fiber.Ctx) error {
	payload := transparencyPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	name, data, err := s.requireFormFile(c, "arquivo", "Envie o documento.")
	if err != nil {
		return err
	}
	if err := validation.CheckDocumentFilename(name); err != nil {
		return err
	}
	filePath, err := s.uploadSvc.Store(c.UserContext(), config.DocFolder, name, data, nil)
	if err != nil {
		return err
	}

	doc := &models.TransparencyDoc{
		Title:       payload.Title,
		Slug:        service.Slugify(payload.Title),
		Description: payload.Description,
		FilePath:    filePath,
		PublishedAt: time.Now().UTC(),
	}
	if err := s.transparencyRepo.Create(c.UserContext(), doc); err != nil {
		s.cleanupUpload(c, filePath)
		return err
	}
	return created(c, fiber.Map{"doc": doc})
}

// UpdateTransparencyDoc edits a document's metadata and optionally replaces
// the file.
func (s *Server) UpdateTransparencyDoc(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, err := s.transparencyRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := transparencyPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	var filePath string
	if name, data, ferr := s.formFile(c, "arquivo"); ferr != nil {
		return ferr
	} else if name != "" {
		if err := validation.CheckDocumentFilename(name); err != nil {
			return err
		}
		filePath, err = s.uploadSvc.Store(c.UserContext(), config.DocFolder, name, data, nil)
		if err != nil {
			return err
		}
	}

	oldFile := doc.FilePath
	doc.Title = payload.Title
	doc.Slug = service.Slugify(payload.Title)
	doc.Description = payload.Description
	if filePath != "" {
		doc.FilePath = filePath
	}
	if err := s.transparencyRepo.Update(c.UserContext(), doc); err != nil {
		s.cleanupUpload(c, filePath)
		return err
	}
	if filePath != "" && oldFile != "" {
		s.cleanupUpload(c, oldFile)
	}
	return c.JSON(fiber.Map{"doc": doc})
}

// DeleteTransparencyDoc removes a document and its file.
func (s *Server) DeleteTransparencyDoc(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, err := s.transparencyRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.transparencyRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, doc.FilePath)
	return c.JSON(fiber.Map{"deleted": true})
}
