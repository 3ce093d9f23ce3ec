package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gymchain/config"
	"github.com/gymchain/database"
	"github.com/gymchain/export"
	"github.com/gymchain/generator"
)

// Generates a dataset from the built-in reference catalogs and writes
// it straight to CSV, no database required.
func main() {
	var (
		outDir = flag.String("out", "", "Output directory (default: EXPORT_DIR or ./out)")
		seed   = flag.Uint64("seed", 0, "Generator seed (default: GENERATOR_SEED)")
		help   = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *outDir == "" {
		*outDir = cfg.Generator.ExportDir
	}
	if *seed == 0 {
		*seed = cfg.Generator.Seed
	}

	fmt.Println("🏋️  Gym Chain Dataset Generator (CSV mode)")

	branches := database.DefaultBranches()
	ref := generator.Reference{
		Branches:        branches,
		MembershipTypes: database.DefaultMembershipTypes(),
		Classes:         database.DefaultClasses(),
		Trainers:        database.GenerateTrainers(branches, *seed),
	}

	pipeline, err := generator.NewPipeline(generator.Config{
		HorizonStart: cfg.Generator.HorizonStart,
		HorizonEnd:   cfg.Generator.HorizonEnd,
		MinMembers:   cfg.Generator.MinMembers,
		MaxMembers:   cfg.Generator.MaxMembers,
		Seed:         *seed,
	})
	if err != nil {
		log.Fatalf("Invalid generator configuration: %v", err)
	}

	log.Println("Generating dataset...")
	dataset, err := pipeline.Run(ref)
	if err != nil {
		log.Fatalf("Failed to generate dataset: %v", err)
	}

	if err := database.ValidateDataset(dataset, ref, cfg.Generator.HorizonEnd); err != nil {
		log.Fatalf("Generated dataset failed validation: %v", err)
	}

	log.Printf("Exporting dataset to %s...", *outDir)
	manifest, err := export.WriteDataset(*outDir, dataset, ref, *seed)
	if err != nil {
		log.Fatalf("Failed to export dataset: %v", err)
	}

	fmt.Printf("\n✨ Export complete (run %s)\n", manifest.RunID)
}

func showHelp() {
	fmt.Println("Gym Chain Dataset Generator (CSV mode)")
	fmt.Println("======================================")
	fmt.Println("\nUsage:")
	fmt.Println("  go run cmd/generate/main.go [flags]")
	fmt.Println("\nFlags:")
	fmt.Println("  -out      Output directory (default: EXPORT_DIR or ./out)")
	fmt.Println("  -seed     Generator seed (default: GENERATOR_SEED; 0 seeds from the clock)")
	fmt.Println("  -help     Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate with the configured horizon and a fixed seed")
	fmt.Println("  go run cmd/generate/main.go -seed 42 -out ./out")
}
