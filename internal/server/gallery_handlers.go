package server

import (
	"time"

	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/service"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type galleryPayload struct {
	Title       string `validate:"required,max=255"`
	Description string
}

// ListGalleryItems returns gallery photos, newest first.
func (s *Server) ListGalleryItems(c *fiber.Ctx) error {
	items, err := s.galleryRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

// CreateGalleryItem publishes a photo. The image is required.
func (s *Server) CreateGalleryItem(c *fiber.Ctx) error {
	payload := galleryPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	name, data, err := s.requireFormFile(c, "imagem", "Envie uma imagem para a galeria.")
	if err != nil {
		return err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return err
	}
	imagePath, err := s.uploadSvc.Store(c.UserContext(), config.ImageFolder, name, data,
		service.FitProcessor(service.ContentImageWidth, service.ContentImageHeight))
	if err != nil {
		return err
	}

	item := &models.GalleryItem{
		Title:       payload.Title,
		Slug:        service.Slugify(payload.Title),
		Description: payload.Description,
		ImagePath:   imagePath,
		PublishedAt: time.Now().UTC(),
	}
	if err := s.galleryRepo.Create(c.UserContext(), item); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	return created(c, fiber.Map{"item": item})
}

// UpdateGalleryItem edits a photo's metadata and optionally replaces the
// image.
func (s *Server) UpdateGalleryItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := s.galleryRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := galleryPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	var imagePath string
	if name, data, ferr := s.formFile(c, "imagem"); ferr != nil {
		return ferr
	} else if name != "" {
		if err := validation.CheckImageFilename(name); err != nil {
			return err
		}
		imagePath, err = s.uploadSvc.Store(c.UserContext(), config.ImageFolder, name, data,
			service.FitProcessor(service.ContentImageWidth, service.ContentImageHeight))
		if err != nil {
			return err
		}
	}

	oldImage := item.ImagePath
	item.Title = payload.Title
	item.Slug = service.Slugify(payload.Title)
	item.Description = payload.Description
	if imagePath != "" {
		item.ImagePath = imagePath
	}
	if err := s.galleryRepo.Update(c.UserContext(), item); err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}
	if imagePath != "" && oldImage != "" {
		s.cleanupUpload(c, oldImage)
	}
	return c.JSON(fiber.Map{"item": item})
}

// DeleteGalleryItem removes a photo and its file.
func (s *Server) DeleteGalleryItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := s.galleryRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.galleryRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, item.ImagePath)
	return c.JSON(fiber.Map{"deleted": true})
}
