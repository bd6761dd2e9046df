package server

import (
	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type partnerPayload struct {
	Name        string `validate:"required,max=255"`
	Description string
	Website     string `validate:"omitempty,url,max=255"`
}

// ListPartners returns all partners, newest first.
func (s *Server) ListPartners(c *fiber.Ctx) error {
	partners, err := s.partnerRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"partners": partners})
}

// CreatePartner registers a partner with an optional logo.
func (s *Server) CreatePartner(c *fiber.Ctx) error {
	payload := partnerPayload{
		Name:        formValue(c, "nome"),
		Description: formValue(c, "descricao"),
		Website:     formValue(c, "site"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	logoPath, err := s.storePartnerLogo(c)
	if err != nil {
		return err
	}

	partner := &models.Partner{
		Name:        payload.Name,
		Slug:        service.Slugify(payload.Name),
		Description: payload.Description,
		Website:     payload.Website,
		LogoPath:    logoPath,
	}
	if err := s.partnerRepo.Create(c.UserContext(), partner); err != nil {
		s.cleanupUpload(c, logoPath)
		return err
	}
	return created(c, fiber.Map{"partner": partner})
}

// UpdatePartner edits a partner, replacing the logo when a new one is sent.
func (s *Server) UpdatePartner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	partner, err := s.partnerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := partnerPayload{
		Name:        formValue(c, "nome"),
		Description: formValue(c, "descricao"),
		Website:     formValue(c, "site"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	logoPath, err := s.storePartnerLogo(c)
	if err != nil {
		return err
	}

	oldLogo := partner.LogoPath
	partner.Name = payload.Name
	partner.Slug = service.Slugify(payload.Name)
	partner.Description = payload.Description
	partner.Website = payload.Website
	if logoPath != "" {
		partner.LogoPath = logoPath
	}
	if err := s.partnerRepo.Update(c.UserContext(), partner); err != nil {
		s.cleanupUpload(c, logoPath)
		return err
	}
	if logoPath != "" && oldLogo != "" {
		s.cleanupUpload(c, oldLogo)
	}
	return c.JSON(fiber.Map{"partner": partner})
}

// DeletePartner removes a partner and its logo file.
func (s *Server) DeletePartner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	partner, err := s.partnerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.partnerRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, partner.LogoPath)
	return c.JSON(fiber.Map{"deleted": true})
}

// storePartnerLogo saves an optional logo exactly as uploaded; logos render at
// their native size and skip processing.
func (s *Server) storePartnerLogo(c *fiber.Ctx) (string, error) {
	name, data, err := s.formFile(c, "logo")
	if err != nil || name == "" {
		return "", err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return "", err
	}
	return s.uploadSvc.Store(c.UserContext(), config.ImageFolder, name, data, nil)
}
