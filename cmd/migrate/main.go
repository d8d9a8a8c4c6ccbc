package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"cart-ticketing-service/internal/config"
	"cart-ticketing-service/internal/database"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch {
	case *statusFlag:
		if err := printStatus(db); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case *upFlag:
		if err := db.RunMigrations(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("All migrations completed successfully!")
	default:
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/migrate/main.go -status   # Show migration status")
		fmt.Println("  go run cmd/migrate/main.go -up       # Run pending migrations")
		os.Exit(1)
	}
}

func printStatus(db *database.DB) error {
	migrator := database.NewMigrator(db.DB)
	if err := migrator.CreateMigrationsTable(); err != nil {
		return err
	}
	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		return err
	}
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("%03d %-40s %s\n", m.Version, m.Name, state)
	}
	return nil
}
