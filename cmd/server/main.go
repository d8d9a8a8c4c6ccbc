package main

import (
	"fmt"
	"log"
	"net/http"

	"cart-ticketing-service/internal/clients"
	"cart-ticketing-service/internal/config"
	"cart-ticketing-service/internal/database"
	"cart-ticketing-service/internal/handlers"
	"cart-ticketing-service/internal/middleware"
	"cart-ticketing-service/internal/monitoring"
	"cart-ticketing-service/internal/repositories"
	"cart-ticketing-service/internal/services"
	"cart-ticketing-service/internal/ticket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database ready")

	// Optional redis backend for the issuance lock
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		log.Printf("Issuance lock backed by redis at %s", cfg.Redis.Addr)
	}

	// Cart lines always live in the local database; the principals and the
	// catalog come either from remote collaborator services or from the
	// local repositories, selected by config.
	cartRepo := repositories.NewCartRepository(db.DB)

	var (
		users    services.UserSource
		orders   services.OrderRepository
		products services.ProductSource
	)
	if cfg.RemoteCollaborators() {
		tokens := clients.NewTokenProvider(cfg.Clients.TokenSecret, cfg.Clients.TokenTTL)
		users = clients.NewUserClient(cfg.Clients.UserServiceURL, tokens)
		orders = clients.NewOrderClient(cfg.Clients.OrderServiceURL, tokens)
		products = clients.NewProductClient(cfg.Clients.ProductServiceURL, tokens)
		log.Println("Using remote collaborator services")
	} else {
		users = repositories.NewUserRepository(db.DB)
		orders = repositories.NewOrderRepository(db.DB)
		products = repositories.NewProductRepository(db.DB)
	}

	// Initialize services
	cipher := ticket.NewCipher()
	codec := ticket.NewCodec(cfg.Ticket.QRSize)
	locker := services.NewOrderLocker(redisClient, cfg.Ticket.LockTTL)

	ticketService := services.NewTicketService(users, orders, products, cartRepo, cipher, codec, locker)
	cartService := services.NewCartService(orders, products, cartRepo)

	// Initialize handlers
	ticketHandler := handlers.NewTicketHandler(ticketService)
	cartHandler := handlers.NewCartHandler(cartService)
	technicalAuth := middleware.NewTechnicalAuth(cfg.Clients.TokenSecret)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", monitoring.Handler())

	r.Route("/api/cart", func(r chi.Router) {
		// Issuance is triggered by the order service after payment and
		// requires the shared technical token.
		r.With(technicalAuth.Require).Post("/qrcode/{userId}/{orderId}", ticketHandler.Issue)

		r.Get("/items/{cartItemId}/qrcode", ticketHandler.Image)
		r.Post("/qrcode/decode", ticketHandler.Decode)
		r.Post("/qrcode/redeem", ticketHandler.Redeem)

		r.Post("/items", cartHandler.AddItems)
		r.Get("/{userId}", cartHandler.Items)
		r.Delete("/items/{cartItemId}", cartHandler.RemoveItem)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
