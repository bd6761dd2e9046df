// Package server contains the HTTP handlers for the admin and public APIs.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"esperanca/internal/cache"
	"esperanca/internal/config"
	"esperanca/internal/database"
	"esperanca/internal/middleware"
	"esperanca/internal/models"
	"esperanca/internal/repository"
	"esperanca/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
	app    *fiber.App
	prom   *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	textRepo         repository.TextRepository
	partnerRepo      repository.PartnerRepository
	volunteerRepo    repository.VolunteerRepository
	galleryRepo      repository.GalleryRepository
	transparencyRepo repository.TransparencyRepository
	supportRepo      repository.SupportRepository
	bannerRepo       repository.BannerRepository
	testimonialRepo  repository.TestimonialRepository
	productRepo      repository.ProductRepository

	uploadSvc   *service.UploadService
	contentSvc  *service.ContentService
	catalogSvc  *service.CatalogService
	donationSvc *service.DonationService
}

// NewServer creates a server instance, connecting the database and Redis.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	redisClient := cache.Connect(cfg.RedisURL, logger)
	return NewServerWithDeps(cfg, db, redisClient, logger)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and no Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) (*Server, error) {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		logger: logger,
		prom:   fiberprometheus.New("esperanca-api"),

		userRepo:         repository.NewUserRepository(db),
		textRepo:         repository.NewTextRepository(db),
		partnerRepo:      repository.NewPartnerRepository(db),
		volunteerRepo:    repository.NewVolunteerRepository(db),
		galleryRepo:      repository.NewGalleryRepository(db),
		transparencyRepo: repository.NewTransparencyRepository(db),
		supportRepo:      repository.NewSupportRepository(db),
		bannerRepo:       repository.NewBannerRepository(db),
		testimonialRepo:  repository.NewTestimonialRepository(db),
		productRepo:      repository.NewProductRepository(cfg.StoreDataPath(), logger),
	}

	s.uploadSvc = service.NewUploadService(cfg, logger)
	s.contentSvc = service.NewContentService(s.textRepo)
	s.catalogSvc = service.NewCatalogService(s.productRepo)
	s.donationSvc = service.NewDonationService(cfg, logger)

	// Reserved sections must exist before the first request.
	if err := s.contentSvc.EnsureReserved(context.Background()); err != nil {
		return nil, fmt.Errorf("seeding institutional sections: %w", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadSizeBytes(),
		ErrorHandler: s.errorHandler,
	})
	s.app = app
	s.setupMiddleware(app)
	s.setupRoutes(app)

	return s, nil
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler is the single boundary translating errors to HTTP responses.
// Handlers return AppError values; anything else becomes a logged 500 with a
// generic message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	status := models.StatusForError(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.ErrorContext(c.UserContext(), "unhandled request error",
			"path", c.Path(), "method", c.Method(), "error", err)
		// Never leak internals to the client.
		err = models.NewInternalError(nil)
	}
	return models.RespondWithError(c, status, err)
}

func (s *Server) setupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(s.prom.Middleware)
	app.Use(helmet.New(helmet.Config{
		// Uploaded images are embedded by the public frontend.
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.StructuredLogger(s.logger))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	s.prom.RegisterAt(app, "/metrics")

	// Uploaded media by root-relative path.
	app.Get("/uploads/*", s.ServeUpload)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, s.config.Env, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", middleware.AuthRequired, s.Me)

	// Public site data.
	public := api.Group("/public")
	public.Get("/home", s.PublicHome)
	public.Get("/sobre", s.PublicAbout)
	public.Get("/projetos", s.PublicProjects)
	public.Get("/galeria", s.PublicGallery)
	public.Get("/transparencia", s.PublicTransparency)
	public.Get("/contato", s.PublicContact)
	public.Get("/depoimentos", s.PublicTestimonials)
	public.Get("/doacao", s.PublicDonation)
	public.Get("/loja", s.PublicCatalog)
	public.Get("/loja/:slug", s.PublicCatalogItem)
	public.Get("/paginas/:slug", s.PublicPage)

	// Admin panel. Every route requires an authenticated admin.
	admin := api.Group("/admin", middleware.AuthRequired, middleware.AdminRequired)
	admin.Get("/dashboard", s.Dashboard)

	admin.Get("/textos", s.ListTexts)
	admin.Post("/textos", s.CreateText)
	admin.Put("/textos/:id", s.UpdateText)
	admin.Delete("/textos/:id", s.DeleteText)

	admin.Get("/parceiros", s.ListPartners)
	admin.Post("/parceiros", s.CreatePartner)
	admin.Put("/parceiros/:id", s.UpdatePartner)
	admin.Delete("/parceiros/:id", s.DeletePartner)

	admin.Get("/voluntarios", s.ListVolunteers)
	admin.Post("/voluntarios", s.CreateVolunteer)
	admin.Put("/voluntarios/:id", s.UpdateVolunteer)
	admin.Delete("/voluntarios/:id", s.DeleteVolunteer)

	admin.Get("/galeria", s.ListGalleryItems)
	admin.Post("/galeria", s.CreateGalleryItem)
	admin.Put("/galeria/:id", s.UpdateGalleryItem)
	admin.Delete("/galeria/:id", s.DeleteGalleryItem)

	admin.Get("/transparencia", s.ListTransparencyDocs)
	admin.Post("/transparencia", s.CreateTransparencyDoc)
	admin.Put("/transparencia/:id", s.UpdateTransparencyDoc)
	admin.Delete("/transparencia/:id", s.DeleteTransparencyDoc)

	admin.Get("/apoios", s.ListSupportOptions)
	admin.Post("/apoios", s.CreateSupportOption)
	admin.Put("/apoios/:id", s.UpdateSupportOption)
	admin.Delete("/apoios/:id", s.DeleteSupportOption)

	admin.Get("/banners", s.ListBanners)
	admin.Post("/banners", s.CreateBanner)
	admin.Put("/banners/:id", s.UpdateBanner)
	admin.Delete("/banners/:id", s.DeleteBanner)

	admin.Get("/depoimentos", s.ListTestimonials)
	admin.Post("/depoimentos", s.CreateTestimonial)
	admin.Put("/depoimentos/:id", s.UpdateTestimonial)
	admin.Delete("/depoimentos/:id", s.DeleteTestimonial)

	admin.Get("/produtos", s.ListProducts)
	admin.Post("/produtos", s.CreateProduct)
	admin.Put("/produtos/:id", s.UpdateProduct)
	admin.Delete("/produtos/:id", s.DeleteProduct)
}

// HealthCheck reports service liveness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
