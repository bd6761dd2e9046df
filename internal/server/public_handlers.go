package server

import (
	"os"
	"strings"

	"esperanca/internal/content"
	"esperanca/internal/models"
	"esperanca/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ServeUpload streams a stored file by its root-relative path.
func (s *Server) ServeUpload(c *fiber.Ctx) error {
	relPath, err := decodeUploadPath(c.Params("*"))
	if err != nil {
		return err
	}
	abs, err := s.uploadSvc.Resolve(relPath)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err != nil || info.IsDir() {
		return models.NewNotFoundError("Arquivo", relPath)
	}
	return c.SendFile(abs)
}

func decodeUploadPath(raw string) (string, error) {
	relPath := strings.TrimSpace(raw)
	if relPath == "" {
		return "", models.NewNotFoundError("Arquivo", raw)
	}
	return relPath, nil
}

// PublicHome returns everything the landing page renders: banners,
// institutional intro, featured products, and testimonials.
func (s *Server) PublicHome(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(), "inicio", "missao", "principios")
	if err != nil {
		return err
	}
	banners, err := s.bannerRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	testimonials, err := s.testimonialRepo.List(c.UserContext())
	if err != nil {
		return err
	}

	intro := sections["inicio"]
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       intro.Title,
		Description: service.SummarizeText(155, intro.Summary, intro.Body),
	})
	meta.StructuredData = s.organizationSchema(c)

	return c.JSON(fiber.Map{
		"sections":     sections,
		"banners":      banners,
		"testimonials": testimonials,
		"meta":         meta,
	})
}

// PublicAbout returns the "quem somos" page content with partners and
// volunteers.
func (s *Server) PublicAbout(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(),
		"sobre", "missao", "principios", "placeholder_parceiros", "placeholder_voluntarios")
	if err != nil {
		return err
	}
	partners, err := s.partnerRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	volunteers, err := s.volunteerRepo.List(c.UserContext())
	if err != nil {
		return err
	}

	about := sections["sobre"]
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       about.Title,
		Description: service.SummarizeText(155, about.Summary, about.Body),
	})

	return c.JSON(fiber.Map{
		"sections":   sections,
		"partners":   partners,
		"volunteers": volunteers,
		"meta":       meta,
	})
}

// PublicProjects returns the projects page: support options plus the free
// texts that act as project pages.
func (s *Server) PublicProjects(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(), "placeholder_apoios")
	if err != nil {
		return err
	}
	options, err := s.supportRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	texts, err := s.textRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	pages := make([]models.Text, 0, len(texts))
	for _, t := range texts {
		if !content.IsReservedSlug(t.Slug) {
			pages = append(pages, t)
		}
	}

	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Projetos e Como Apoiar",
		Description: service.SummarizeText(155, sections["placeholder_apoios"].Body),
	})

	return c.JSON(fiber.Map{
		"sections": sections,
		"options":  options,
		"pages":    pages,
		"meta":     meta,
	})
}

// PublicGallery returns published photos.
func (s *Server) PublicGallery(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(), "placeholder_galeria")
	if err != nil {
		return err
	}
	items, err := s.galleryRepo.List(c.UserContext())
	if err != nil {
		return err
	}

	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Galeria",
		Description: service.SummarizeText(155, sections["placeholder_galeria"].Body),
	})

	return c.JSON(fiber.Map{"sections": sections, "items": items, "meta": meta})
}

// PublicTransparency returns accountability documents.
func (s *Server) PublicTransparency(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(), "placeholder_transparencia")
	if err != nil {
		return err
	}
	docs, err := s.transparencyRepo.List(c.UserContext())
	if err != nil {
		return err
	}

	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Transparência",
		Description: service.SummarizeText(155, sections["placeholder_transparencia"].Body),
	})

	return c.JSON(fiber.Map{"sections": sections, "docs": docs, "meta": meta})
}

// PublicContact returns the decoded contact card.
func (s *Server) PublicContact(c *fiber.Ctx) error {
	card, err := s.contentSvc.ResolveContact(c.UserContext())
	if err != nil {
		return err
	}

	description := DefaultContactDescription
	if card.Structured != nil && card.Structured.Description != "" {
		description = card.Structured.Description
	}
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Contato",
		Description: service.SummarizeText(155, description),
	})
	meta.StructuredData = s.organizationSchema(c)

	return c.JSON(fiber.Map{"contact": card, "meta": meta})
}

// DefaultContactDescription is used when the contact section has no
// structured description of its own.
const DefaultContactDescription = "Fale com a equipe do Doce Esperança: dúvidas, parcerias, " +
	"voluntariado e doações."

// PublicTestimonials returns video testimonials.
func (s *Server) PublicTestimonials(c *fiber.Ctx) error {
	testimonials, err := s.testimonialRepo.List(c.UserContext())
	if err != nil {
		return err
	}
	meta := s.pageMetadata(c, service.MetadataInput{
		Title: "Depoimentos",
	})
	return c.JSON(fiber.Map{"testimonials": testimonials, "meta": meta})
}

// PublicDonation returns the donation page: the PIX QR code path plus the
// store teaser section.
func (s *Server) PublicDonation(c *fiber.Ctx) error {
	sections, err := s.contentSvc.Resolve(c.UserContext(), "placeholder_produtos")
	if err != nil {
		return err
	}

	qrPath, err := s.donationSvc.QRCodePath(c.UserContext())
	if err != nil {
		// The page still renders without a configured PIX key.
		if models.StatusForError(err) != fiber.StatusNotFound {
			return err
		}
		qrPath = ""
	}

	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Doação",
		Description: service.SummarizeText(155, sections["placeholder_produtos"].Body),
	})

	return c.JSON(fiber.Map{
		"sections": sections,
		"pix_qr":   qrPath,
		"meta":     meta,
	})
}

// PublicCatalog returns the store listing with display prices and slugs.
func (s *Server) PublicCatalog(c *fiber.Ctx) error {
	items, err := s.catalogSvc.List(c.UserContext())
	if err != nil {
		return err
	}
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       "Lojinha",
		Description: "Produtos solidários do Doce Esperança. Cada compra apoia nossos projetos.",
	})
	return c.JSON(fiber.Map{"items": items, "meta": meta})
}

// PublicCatalogItem returns one product by its display slug.
func (s *Server) PublicCatalogItem(c *fiber.Ctx) error {
	item, err := s.catalogSvc.GetByDisplaySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       item.Name,
		Description: service.SummarizeText(155, item.Description),
		OGImage:     s.absoluteUploadURL(item.ImagePath),
	})
	return c.JSON(fiber.Map{"item": item, "meta": meta})
}

// PublicPage returns a free-slug institutional text as a standalone page.
// Reserved section slugs are not addressable here.
func (s *Server) PublicPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if content.IsReservedSlug(slug) {
		return models.NewNotFoundError("Página", slug)
	}
	text, err := s.textRepo.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return err
	}
	if text == nil {
		return models.NewNotFoundError("Página", slug)
	}
	meta := s.pageMetadata(c, service.MetadataInput{
		Title:       text.Title,
		Description: service.SummarizeText(155, text.Summary, text.Content),
		OGImage:     s.absoluteUploadURL(text.ImagePath),
	})
	return c.JSON(fiber.Map{"page": text, "meta": meta})
}

func (s *Server) pageMetadata(c *fiber.Ctx, in service.MetadataInput) service.Metadata {
	if in.Canonical == "" && s.config.SiteBaseURL != "" {
		in.Canonical = strings.TrimRight(s.config.SiteBaseURL, "/") + c.Path()
	}
	return service.BuildMetadata(in)
}

func (s *Server) organizationSchema(c *fiber.Ctx) map[string]any {
	card, err := s.contentSvc.ResolveContact(c.UserContext())
	if err != nil {
		s.logger.WarnContext(c.UserContext(), "contact lookup for schema failed", "error", err)
		card = service.ContactCard{}
	}
	in := service.OrganizationSchemaInput{
		BaseURL: s.config.SiteBaseURL,
		Email:   card.Email,
	}
	if card.Structured != nil {
		in.Phone = card.Structured.Phone
		in.Address = card.Structured.Address
		for _, link := range []string{
			card.Structured.Facebook,
			card.Structured.Instagram,
			card.Structured.YouTube,
		} {
			if link != "" {
				in.SameAs = append(in.SameAs, link)
			}
		}
	}
	return service.BuildOrganizationSchema(in)
}

func (s *Server) absoluteUploadURL(relPath string) string {
	if relPath == "" || s.config.SiteBaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.config.SiteBaseURL, "/") + "/uploads/" + relPath
}
