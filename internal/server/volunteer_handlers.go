package server

import (
	"esperanca/internal/models"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type volunteerPayload struct {
	Name         string `validate:"required,max=255"`
	Area         string `validate:"max=255"`
	Availability string `validate:"max=255"`
	Description  string
}

// ListVolunteers returns all volunteers, newest first.
func (s *Server) ListVolunteers(c *fiber.Ctx) error {
	volunteers, err := s.volunteerRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"volunteers": volunteers})
}

// CreateVolunteer registers a volunteer.
func (s *Server) CreateVolunteer(c *fiber.Ctx) error {
	payload := volunteerPayload{
		Name:         formValue(c, "nome"),
		Area:         formValue(c, "area"),
		Availability: formValue(c, "disponibilidade"),
		Description:  formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	volunteer := &models.Volunteer{
		Name:         payload.Name,
		Area:         payload.Area,
		Availability: payload.Availability,
		Description:  payload.Description,
	}
	if err := s.volunteerRepo.Create(c.UserContext(), volunteer); err != nil {
		return err
	}
	return created(c, fiber.Map{"volunteer": volunteer})
}

// UpdateVolunteer edits a volunteer record.
func (s *Server) UpdateVolunteer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	volunteer, err := s.volunteerRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := volunteerPayload{
		Name:         formValue(c, "nome"),
		Area:         formValue(c, "area"),
		Availability: formValue(c, "disponibilidade"),
		Description:  formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}

	volunteer.Name = payload.Name
	volunteer.Area = payload.Area
	volunteer.Availability = payload.Availability
	volunteer.Description = payload.Description
	if err := s.volunteerRepo.Update(c.UserContext(), volunteer); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"volunteer": volunteer})
}

// DeleteVolunteer removes a volunteer record.
func (s *Server) DeleteVolunteer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := s.volunteerRepo.GetByID(c.UserContext(), id); err != nil {
		return err
	}
	if err := s.volunteerRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deleted": true})
}
