// Command seed prepares a fresh installation: it creates the reserved
// institutional sections and an administrator account.
package main

import (
	"context"
	"flag"
	"log"

	"esperanca/internal/config"
	"esperanca/internal/database"
	"esperanca/internal/middleware"
	"esperanca/internal/models"
	"esperanca/internal/repository"
)

func main() {
	username := flag.String("username", "admin", "Admin username")
	email := flag.String("email", "admin@esperanca.org", "Admin e-mail")
	password := flag.String("password", "", "Admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("a password is required: -password <value>")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := middleware.NewLogger(cfg.Env)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	ctx := context.Background()

	textRepo := repository.NewTextRepository(db)
	if err := textRepo.EnsureReserved(ctx); err != nil {
		log.Fatalf("Failed to seed institutional sections: %v", err)
	}
	log.Println("Institutional sections in place")

	userRepo := repository.NewUserRepository(db)
	existing, err := userRepo.GetByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if existing != nil {
		log.Printf("User %q already exists, skipping", *username)
		return
	}

	admin := &models.User{
		Username: *username,
		Email:    *email,
		IsActive: true,
		IsAdmin:  true,
	}
	if err := admin.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user %q created", *username)
}
