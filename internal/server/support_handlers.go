package server

import (
	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type supportPayload struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"required"`
}

// ListSupportOptions returns support options, newest first.
func (s *Server) ListSupportOptions(c *fiber.Ctx) error {
	options, err := s.supportRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"options": options})
}

// CreateSupportOption adds a way to support the NGO, with an optional
// illustration.
func (s *Server) CreateSupportOption(c *fiber.Ctx) error {
	payload := supportPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	imagePath, err := s.storeSupportImage(c)
	if err != nil {
		return err
	}

	option := &models.SupportOption{
		Title:       payload.Title,
		Description: payload.Description,
		ImagePath:   imagePath,
	}
	if err := s.supportRepo.Create(c.UserContext(), option); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	return created(c, fiber.Map{"option": option})
}

// UpdateSupportOption edits a support option.
func (s *Server) UpdateSupportOption(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	option, err := s.supportRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := supportPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	imagePath, err := s.storeSupportImage(c)
	if err != nil {
		return err
	}

	oldImage := option.ImagePath
	option.Title = payload.Title
	option.Description = payload.Description
	if imagePath != "" {
		option.ImagePath = imagePath
	}
	if err := s.supportRepo.Update(c.UserContext(), option); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	if imagePath != "" && oldImage != "" {
		s.cleanupUpload(c, oldImage)
	}
	return c.JSON(fiber.Map{"option": option})
}

// DeleteSupportOption removes a support option and its image.
func (s *Server) DeleteSupportOption(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	option, err := s.supportRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.supportRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, option.ImagePath)
	return c.JSON(fiber.Map{"deleted": true})
}

// storeSupportImage scales an optional illustration down to the support page
// width, keeping the aspect ratio.
func (s *Server) storeSupportImage(c *fiber.Ctx) (string, error) {
	name, data, err := s.formFile(c, "imagem")
	if err != nil || name == "" {
		return "", err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return "", err
	}
	return s.uploadSvc.Store(c.UserContext(), config.SupportFolder, name, data,
		service.MaxWidthProcessor(service.SupportImageMaxWidth))
}
