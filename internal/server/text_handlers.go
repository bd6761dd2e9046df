package server

import (
	"esperanca/internal/config"
	"esperanca/internal/content"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type textPayload struct {
	Title   string `validate:"required,max=255"`
	Slug    string `validate:"required,max=255"`
	Summary string `validate:"max=512"`
	Content string `validate:"required"`
}

// ListTexts returns all institutional texts, most recently updated first.
func (s *Server) ListTexts(c *fiber.Ctx) error {
	texts, err := s.textRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"texts": texts})
}

// CreateText creates a free-slug text. Reserved slugs are seeded at startup
// and cannot be created through the API.
func (s *Server) CreateText(c *fiber.Ctx) error {
	payload := textPayload{
		Title:   formValue(c, "titulo"),
		Slug:    normalizeSlug(formValue(c, "slug"), formValue(c, "titulo")),
		Summary: formValue(c, "resumo"),
		Content: c.FormValue("conteudo"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	if content.IsReservedSlug(payload.Slug) {
		return models.NewFieldErrors(map[string]string{
			"slug": "Este slug é reservado para seções institucionais.",
		})
	}

	imagePath, err := s.storeContentImage(c)
	if err != nil {
		return err
	}

	text := &models.Text{
		Title:     payload.Title,
		Slug:      payload.Slug,
		Summary:   payload.Summary,
		Content:   payload.Content,
		ImagePath: imagePath,
	}
	if err := s.textRepo.Create(c.UserContext(), text); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	return created(c, fiber.Map{"text": text})
}

// UpdateText edits a text. The slug of a reserved section is immutable.
func (s *Server) UpdateText(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	text, err := s.textRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := textPayload{
		Title:   formValue(c, "titulo"),
		Slug:    normalizeSlug(formValue(c, "slug"), formValue(c, "titulo")),
		Summary: formValue(c, "resumo"),
		Content: c.FormValue("conteudo"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	if content.IsReservedSlug(text.Slug) {
		payload.Slug = text.Slug
	} else if content.IsReservedSlug(payload.Slug) {
		return models.NewFieldErrors(map[string]string{
			"slug": "Este slug é reservado para seções institucionais.",
		})
	}

	imagePath, err := s.storeContentImage(c)
	if err != nil {
		return err
	}

	oldImage := text.ImagePath
	text.Title = payload.Title
	text.Slug = payload.Slug
	text.Summary = payload.Summary
	text.Content = payload.Content
	if imagePath != "" {
		text.ImagePath = imagePath
	}
	if err := s.textRepo.Update(c.UserContext(), text); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	if imagePath != "" && oldImage != "" {
		s.cleanupUpload(c, oldImage)
	}
	return c.JSON(fiber.Map{"text": text})
}

// DeleteText removes a free-slug text and its image. Reserved sections cannot
// be deleted.
func (s *Server) DeleteText(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	text, err := s.textRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if content.IsReservedSlug(text.Slug) {
		return models.NewForbiddenError("Seções institucionais não podem ser excluídas.")
	}
	if err := s.textRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, text.ImagePath)
	return c.JSON(fiber.Map{"deleted": true})
}

// storeContentImage processes an optional "imagem" upload into the standard
// content size.
func (s *Server) storeContentImage(c *fiber.Ctx) (string, error) {
	name, data, err := s.formFile(c, "imagem")
	if err != nil || name == "" {
		return "", err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return "", err
	}
	return s.uploadSvc.Store(c.UserContext(), config.ImageFolder, name, data,
		service.FitProcessor(service.ContentImageWidth, service.ContentImageHeight))
}

// normalizeSlug turns the submitted slug (or, when blank, the title) into
// canonical form.
func normalizeSlug(slug, fallback string) string {
	if out := service.Slugify(slug); out != "" {
		return out
	}
	return service.Slugify(fallback)
}
