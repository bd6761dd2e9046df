package server

import (
	"strings"

	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type productPayload struct {
	Name        string `validate:"required,max=255"`
	Description string
}

// ListProducts returns the raw product records for the admin panel.
func (s *Server) ListProducts(c *fiber.Ctx) error {
	products, err := s.productRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// CreateProduct adds a store product. The photo is required; an optional
// video can accompany it.
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	payload := productPayload{
		Name:        formValue(c, "nome"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	price, err := validation.ParseDecimal("preco", formValue(c, "preco"))
	if err != nil {
		return err
	}
	shipping, err := validation.ParseDecimal("frete", formValue(c, "frete"))
	if err != nil {
		return err
	}

	name, data, err := s.requireFormFile(c, "imagem", "Envie a foto do produto.")
	if err != nil {
		return err
	}
	if err := validation.CheckImageFilename(name); err != nil {
		return err
	}
	imagePath, err := s.uploadSvc.StoreImage(c.UserContext(), data)
	if err != nil {
		return err
	}

	videoPath, err := s.storeProductVideo(c)
	if err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}

	product := &models.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       models.Money(price),
		Shipping:    models.Money(shipping),
		ImagePath:   imagePath,
		VideoPath:   videoPath,
	}
	if err := s.productRepo.Create(c.UserContext(), product); err != nil {
		s.cleanupUpload(c, imagePath)
		s.cleanupUpload(c, videoPath)
		return err
	}
	return created(c, fiber.Map{"product": product})
}

// UpdateProduct edits a product, optionally replacing its photo or video.
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return models.NewValidationError("Identificador inválido.")
	}
	product, err := s.productRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	payload := productPayload{
		Name:        formValue(c, "nome"),
		Description: formValue(c, "descricao"),
	}
	if err := validation.Struct(payload); err != nil {
		return err
	}
	price, err := validation.ParseDecimal("preco", formValue(c, "preco"))
	if err != nil {
		return err
	}
	shipping, err := validation.ParseDecimal("frete", formValue(c, "frete"))
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
		imagePath, err = s.uploadSvc.StoreImage(c.UserContext(), data)
		if err != nil {
			return err
		}
	}
	videoPath, err := s.storeProductVideo(c)
	if err != nil {
		s.cleanupUpload(c, imagePath)
		return err
	}

	oldImage, oldVideo := product.ImagePath, product.VideoPath
	product.Name = payload.Name
	product.Description = payload.Description
	product.Price = models.Money(price)
	product.Shipping = models.Money(shipping)
	if imagePath != "" {
		product.ImagePath = imagePath
	}
	if videoPath != "" {
		product.VideoPath = videoPath
	}
	if err := s.productRepo.Update(c.UserContext(), product); err != nil {
		s.cleanupUpload(c, imagePath)
		s.cleanupUpload(c, videoPath)
		return err
	}
	if imagePath != "" && oldImage != "" {
		s.cleanupUpload(c, oldImage)
	}
	if videoPath != "" && oldVideo != "" {
		s.cleanupUpload(c, oldVideo)
	}
	return c.JSON(fiber.Map{"product": product})
}

// DeleteProduct removes a product and its media files.
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return models.NewValidationError("Identificador inválido.")
	}
	product, err := s.productRepo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.cleanupUpload(c, product.ImagePath)
	s.cleanupUpload(c, product.VideoPath)
	return c.JSON(fiber.Map{"deleted": true})
}

func (s *Server) storeProductVideo(c *fiber.Ctx) (string, error) {
	name, data, err := s.formFile(c, "video")
	if err != nil || name == "" {
		return "", err
	}
	if err := validation.CheckVideoFilename(name); err != nil {
		return "", err
	}
	return s.uploadSvc.Store(c.UserContext(), config.StoreVideoFolder, name, data, nil)
}
