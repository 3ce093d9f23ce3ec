package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gymchain/config"
	"github.com/gymchain/database"
	"github.com/gymchain/export"
	"github.com/gymchain/generator"
	"gorm.io/gorm"
)

func main() {
	// Command line flags
	var (
		migrate   = flag.Bool("migrate", false, "Run database migration only")
		seed      = flag.Bool("seed", false, "Seed reference catalogs only")
		generate  = flag.Bool("generate", false, "Generate and load the dataset only")
		exportCSV = flag.Bool("export", false, "Also export the dataset as CSV files")
		help      = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// No step flags means the full pipeline
	runAll := !*migrate && !*seed && !*generate

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	if runAll || *migrate {
		log.Println("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	if runAll || *seed {
		if err := database.SeedReferenceData(database.DB, cfg.Generator.Seed); err != nil {
			log.Fatalf("Failed to seed reference data: %v", err)
		}
	}

	if runAll || *generate {
		ref, err := database.LoadReference(database.DB)
		if err != nil {
			log.Fatalf("Failed to load reference catalogs: %v", err)
		}

		pipeline, err := generator.NewPipeline(generator.Config{
			HorizonStart: cfg.Generator.HorizonStart,
			HorizonEnd:   cfg.Generator.HorizonEnd,
			MinMembers:   cfg.Generator.MinMembers,
			MaxMembers:   cfg.Generator.MaxMembers,
			Seed:         cfg.Generator.Seed,
		})
		if err != nil {
			log.Fatalf("Invalid generator configuration: %v", err)
		}

		log.Println("Generating dataset...")
		dataset, err := pipeline.Run(ref)
		if err != nil {
			log.Fatalf("Failed to generate dataset: %v", err)
		}

		if err := database.LoadDataset(database.DB, dataset, ref, cfg.Generator.HorizonEnd); err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}

		if *exportCSV {
			log.Printf("Exporting dataset to %s...", cfg.Generator.ExportDir)
			if _, err := export.WriteDataset(cfg.Generator.ExportDir, dataset, ref, cfg.Generator.Seed); err != nil {
				log.Fatalf("Failed to export dataset: %v", err)
			}
		}

		fmt.Println("\n📊 Database Statistics:")
		showTableStats(database.DB)
	}

	fmt.Println("\n✨ Done!")
}

func showHelp() {
	log.Println(`
Gym Chain Dataset Generator

Usage:
  go run main.go [options]

Options:
  -migrate   Run GORM AutoMigrate only
  -seed      Seed reference catalogs only (branches, membership types, classes, trainers)
  -generate  Generate the synthetic dataset and load it only
  -export    Also export the dataset as CSV files (with -generate or the full run)
  -help      Show this help message

With no step flags, the full pipeline runs: migrate, seed, generate, load.

Examples:
  # Full pipeline
  go run main.go

  # Full pipeline plus CSV export
  go run main.go -export

  # Migration only
  go run main.go -migrate

  # Generate and load against an already-seeded database
  go run main.go -generate

For database-free generation straight to CSV, use:
  go run cmd/generate/main.go

Environment:
  Configure through .env or environment variables: DB_DRIVER, DB_HOST,
  DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_FILE, HORIZON_START,
  HORIZON_END, MIN_MEMBERS_PER_BRANCH, MAX_MEMBERS_PER_BRANCH,
  GENERATOR_SEED, EXPORT_DIR`)
}

func showTableStats(db *gorm.DB) {
	tables := []string{
		"branch", "membership_type", "class", "trainers",
		"members", "memberships", "checkins", "class_sessions", "class_attendance",
	}

	for _, table := range tables {
		var count int64
		db.Table(table).Count(&count)
		fmt.Printf("  %-20s: %d rows\n", table, count)
	}
}
