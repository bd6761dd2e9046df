package server

import (
	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type testimonialPayload struct {
	Title       string `validate:"required,max=150"`
	Description string
}

// ListTestimonials returns video testimonials, newest first.
func (s *Server) ListTestimonials(c *fiber.Ctx) error {
	testimonials, err := s.testimonialRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// CreateTestimonial publishes a video testimonial. The video file is stored
// verbatim; only the extension is checked.
func (s *Server) CreateTestimonial(c *fiber.Ctx) error {
	payload := testimonialPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	name, data, err := s.requireFormFile(c, "video", "Envie o vídeo do depoimento.")
	if err != nil {
		return err
	}
	if err := validation.CheckVideoFilename(name); err != nil {
		return err
	}
	videoPath, err := s.uploadSvc.Store(c.UserContext(), config.VideoFolder, name, data, nil)
	if err != nil {
		return err
	}

	testimonial := &models.Testimonial{
		Title:       payload.Title,
		Description: payload.Description,
		VideoPath:   videoPath,
	}
	if err := s.testimonialRepo.Create(c.UserContext(), testimonial); err != nil {
		s.cleanupUpload(c, videoPath)
		return err
	}
	return created(c, fiber.Map{"testimonial": testimonial})
}

// UpdateTestimonial edits a testimonial and optionally replaces the video.
func (s *Server) UpdateTestimonial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	testimonial, err := s.testimonialRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := testimonialPayload{
		Title:       formValue(c, "titulo"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	var videoPath string
	if name, data, ferr := s.formFile(c, "video"); ferr != nil {
		return ferr
	} else if name != "" {
		if err := validation.CheckVideoFilename(name); err != nil {
			return err
		}
		videoPath, err = s.uploadSvc.Store(c.UserContext(), config.VideoFolder, name, data, nil)
		if err != nil {
			return err
		}
	}

	oldVideo := testimonial.VideoPath
	testimonial.Title = payload.Title
	testimonial.Description = payload.Description
	if videoPath != "" {
		testimonial.VideoPath = videoPath
	}
	if err := s.testimonialRepo.Update(c.UserContext(), testimonial); err != nil {
		s.cleanupUpload(c, videoPath)
		return err
	}
	if videoPath != "" && oldVideo != "" {
		s.cleanupUpload(c, oldVideo)
	}
	return c.JSON(fiber.Map{"testimonial": testimonial})
}

// DeleteTestimonial removes a testimonial and its video file.
func (s *Server) DeleteTestimonial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	testimonial, err := s.testimonialRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.testimonialRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, testimonial.VideoPath)
	return c.JSON(fiber.Map{"deleted": true})
}
