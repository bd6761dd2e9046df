package server

import (
	"esperanca/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns record counts for the admin overview.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	counts := fiber.Map{}
	for name, model := range map[string]any{
		"texts":        &models.Text{},
		"partners":     &models.Partner{},
		"volunteers":   &models.Volunteer{},
		"gallery":      &models.GalleryItem{},
		"transparency": &models.TransparencyDoc{},
		"support":      &models.SupportOption{},
		"banners":      &models.Banner{},
		"testimonials": &models.Testimonial{},
	} {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return models.NewInternalError(err)
		}
		counts[name] = n
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return err
	}
	counts["products"] = len(products)

	return c.JSON(fiber.Map{"counts": counts})
}
