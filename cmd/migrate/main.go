package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gymchain/config"
	"github.com/gymchain/database"
	"github.com/gymchain/models"
	"gorm.io/gorm"
)

func main() {
	// Command line flags
	var (
		drop = flag.Bool("drop", false, "Drop all tables before migration")
		help = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("🚀 Starting Database Migration Tool")
	if cfg.Database.Driver == "sqlite" {
		fmt.Printf("📊 Database: sqlite file %s\n", cfg.Database.FilePath)
	} else {
		fmt.Printf("📊 Database: %s@%s:%s/%s\n",
			cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Check connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Printf("⚠️  Warning: %v", err)
	}

	// Drop tables if requested
	if *drop {
		fmt.Println("⚠️  Dropping all tables...")
		if err := dropAllTables(database.DB); err != nil {
			log.Fatalf("❌ Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped")
	}

	// Run AutoMigrate
	fmt.Println("🔄 Running GORM AutoMigrate...")
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("❌ Failed to run migration: %v", err)
	}

	fmt.Println("✅ Migration completed successfully!")
}

func dropAllTables(db *gorm.DB) error {
	// Reverse dependency order so foreign keys don't block drops
	all := models.AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(all[i]); err != nil {
			return fmt.Errorf("failed to resolve table name: %w", err)
		}
		table := stmt.Schema.Table

		fmt.Printf("  Dropping table: %s\n", table)
		if err := db.Migrator().DropTable(all[i]); err != nil {
			log.Printf("  Warning: Failed to drop %s: %v", table, err)
		}
	}
	return nil
}

func showHelp() {
	fmt.Println(`
Database Migration Tool for the Gym Chain Dataset Generator

Usage:
  go run cmd/migrate/main.go [options]

Options:
  -drop     Drop all tables before migration (WARNING: Data loss!)
  -help     Show this help message

Examples:
  # Run migration (create/update tables)
  go run cmd/migrate/main.go

  # Drop all tables and recreate
  go run cmd/migrate/main.go -drop

Environment:
  Requires .env file or environment variables for database configuration:
  - DB_DRIVER (postgres or sqlite)
  - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME (postgres)
  - DB_FILE (sqlite)`)
}
