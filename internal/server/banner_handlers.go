package server

import (
	"strconv"

	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type bannerPayload struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"max=512"`
}

// ListBanners returns carousel banners in display order.
func (s *Server) ListBanners(c *fiber.Ctx) error {
	banners, err := s.bannerRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"banners": banners})
}

// CreateBanner publishes a carousel slide. The image is required and is
// cropped to the banner aspect before anything touches the database.
func (s *Server) CreateBanner(c *fiber.Ctx) error {
	payload := bannerPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	order, err := parseOrder(c)
	if err != nil {
		return err
	}

	name, data, err := s.requireFormFile(c, "imagem", "Envie a imagem do banner.")
	if err != nil {
		return err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return err
	}
	imagePath, err := s.uploadSvc.Store(c.UserContext(), config.BannerFolder, name, data,
		service.FitProcessor(service.BannerImageWidth, service.BannerImageHeight))
	if err != nil {
		return err
	}

	banner := &models.Banner{
		Title:       payload.Title,
		Description: payload.Description,
		Order:       order,
		ImagePath:   imagePath,
	}
	if err := s.bannerRepo.Create(c.UserContext(), banner); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	return created(c, fiber.Map{"banner": banner})
}

// UpdateBanner edits a slide and optionally replaces its image.
func (s *Server) UpdateBanner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	banner, err := s.bannerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := bannerPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	order, err := parseOrder(c)
	if err != nil {
		return err
	}

	var imagePath string
	if name, data, ferr := s.formFile(c, "imagem"); ferr != nil {
		return ferr
	} else if name != "" {
		if err := validation.CheckImageFilename(name); err != nil {
			return err
		}
		imagePath, err = s.uploadSvc.Store(c.UserContext(), config.BannerFolder, name, data,
			service.FitProcessor(service.BannerImageWidth, service.BannerImageHeight))
		if err != nil {
			return err
		}
	}

	oldImage := banner.ImagePath
	banner.Title = payload.Title
	banner.Description = payload.Description
	banner.Order = order
	if imagePath != "" {
		banner.ImagePath = imagePath
	}
	if err := s.bannerRepo.Update(c.UserContext(), banner); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	if imagePath != "" && oldImage != "" {
		s.cleanupUpload(c, oldImage)
	}
	return c.JSON(fiber.Map{"banner": banner})
}

// DeleteBanner removes a slide and its image file.
func (s *Server) DeleteBanner(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	banner, err := s.bannerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, banner.ImagePath)
	return c.JSON(fiber.Map{"deleted": true})
}

func parseOrder(c *fiber.Ctx) (int, error) {
	raw := formValue(c, "ordem")
	if raw == "" {
		return 0, nil
	}
	order, err := strconv.Atoi(raw)
	if err != nil || order < 0 {
		return 0, models.NewFieldErrors(map[string]string{
			"ordem": "Informe um número inteiro a partir de zero.",
		})
	}
	return order, nil
}
