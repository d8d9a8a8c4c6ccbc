package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"cart-ticketing-service/internal/config"
	"cart-ticketing-service/internal/database"
	"cart-ticketing-service/internal/models"
	"cart-ticketing-service/internal/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	seedUsers(ctx, repositories.NewUserRepository(db.DB))
	seedProducts(ctx, repositories.NewProductRepository(db.DB))
	log.Println("Seeding complete")
}

func seedUsers(ctx context.Context, users *repositories.UserRepository) {
	seeds := []*models.UserCreateRequest{
		{Name: "Admin", Email: "admin@example.com", Password: "change-me-now", Role: models.RoleAdmin},
		{Name: "Gate Agent", Email: "agent@example.com", Password: "change-me-now", Role: models.RoleAgent},
		{Name: "John Doe", Email: "john@example.com", Password: "change-me-now", Role: models.RoleUser},
	}

	for _, seed := range seeds {
		if _, err := users.UserByEmail(ctx, seed.Email); err == nil {
			log.Printf("User %s already exists, skipping", seed.Email)
			continue
		} else if !errors.Is(err, models.ErrUserNotFound) {
			log.Fatalf("Failed to check for user %s: %v", seed.Email, err)
		}

		user, err := users.Create(ctx, seed)
		if err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.Email, err)
		}
		log.Printf("Created user %d (%s, %s)", user.ID, user.Name, user.Role)
	}
}

func seedProducts(ctx context.Context, products *repositories.ProductRepository) {
	existing, err := products.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d products, skipping", len(existing))
		return
	}

	seeds := []*models.Product{
		{Name: "General Admission", Description: "Standard entry", Price: decimal.NewFromInt(25), Stock: 500},
		{Name: "VIP Pass", Description: "Front section plus lounge access", Price: decimal.NewFromInt(80), Stock: 50},
		{Name: "Parking Voucher", Description: "One vehicle, main lot", Price: decimal.NewFromInt(10), Stock: 200},
	}

	for _, seed := range seeds {
		product, err := products.Create(ctx, seed)
		if err != nil {
			log.Fatalf("Failed to create product %s: %v", seed.Name, err)
		}
		log.Printf("Created product %d (%s)", product.ID, product.Name)
	}
}
