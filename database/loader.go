package database

import (
	"fmt"
	"log"
	"time"

	"github.com/gymchain/generator"
	"gorm.io/gorm"
)

// Batch size for bulk inserts.
const loadBatchSize = 500

// LoadDataset validates a generated dataset and bulk-inserts it in
// foreign key dependency order within a single transaction. Nothing is
// written when validation fails.
func LoadDataset(db *gorm.DB, ds *generator.Dataset, ref generator.Reference, horizonEnd time.Time) error {
	log.Println("Validating dataset before load...")
	if err := ValidateDataset(ds, ref, horizonEnd); err != nil {
		return fmt.Errorf("refusing to load: %w", err)
	}

	log.Println("Loading dataset...")
	start := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(ds.Members, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to load members: %w", err)
		}
		log.Printf("  ✓ Loaded %d members", len(ds.Members))

		if err := tx.CreateInBatches(ds.Memberships, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to load memberships: %w", err)
		}
		log.Printf("  ✓ Loaded %d memberships", len(ds.Memberships))

		if err := tx.CreateInBatches(ds.CheckIns, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}
		log.Printf("  ✓ Loaded %d check-ins", len(ds.CheckIns))

		if err := tx.CreateInBatches(ds.Sessions, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to load class sessions: %w", err)
		}
		log.Printf("  ✓ Loaded %d class sessions", len(ds.Sessions))

		if err := tx.CreateInBatches(ds.Attendance, loadBatchSize).Error; err != nil {
			return fmt.Errorf("failed to load class attendance: %w", err)
		}
		log.Printf("  ✓ Loaded %d attendance records", len(ds.Attendance))

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Dataset loaded in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
