package database

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gymchain/generator"
	"github.com/gymchain/models"
	"gorm.io/gorm"
)

// SeedReferenceData seeds the static catalogs the pipeline consumes:
// branches, membership types, the class catalog, and trainers. Skips
// seeding when the catalogs are already populated.
func SeedReferenceData(db *gorm.DB, seed uint64) error {
	log.Println("Checking if reference data needs seeding...")

	var branchCount, typeCount, classCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	db.Model(&models.MembershipType{}).Count(&typeCount)
	db.Model(&models.Class{}).Count(&classCount)

	if branchCount > 0 && typeCount > 0 && classCount > 0 {
		log.Println("Reference data already present. Skipping seed.")
		return nil
	}

	log.Println("Seeding reference catalogs...")

	return db.Transaction(func(tx *gorm.DB) error {
		branches := DefaultBranches()
		if err := tx.Create(&branches).Error; err != nil {
			return fmt.Errorf("failed to seed branches: %w", err)
		}
		log.Printf("  ✓ Seeded %d branches", len(branches))

		types := DefaultMembershipTypes()
		if err := tx.Create(&types).Error; err != nil {
			return fmt.Errorf("failed to seed membership types: %w", err)
		}
		log.Printf("  ✓ Seeded %d membership types", len(types))

		classes := DefaultClasses()
		if err := tx.Create(&classes).Error; err != nil {
			return fmt.Errorf("failed to seed classes: %w", err)
		}
		log.Printf("  ✓ Seeded %d classes", len(classes))

		trainers := GenerateTrainers(branches, seed)
		if err := tx.Create(&trainers).Error; err != nil {
			return fmt.Errorf("failed to seed trainers: %w", err)
		}
		log.Printf("  ✓ Seeded %d trainers", len(trainers))

		log.Println("✅ Reference data seeded successfully!")
		return nil
	})
}

// LoadReference reads the static catalogs back from the database.
func LoadReference(db *gorm.DB) (generator.Reference, error) {
	var ref generator.Reference

	if err := db.Order("branch_id").Find(&ref.Branches).Error; err != nil {
		return ref, fmt.Errorf("failed to load branches: %w", err)
	}
	if err := db.Order("membership_type_id").Find(&ref.MembershipTypes).Error; err != nil {
		return ref, fmt.Errorf("failed to load membership types: %w", err)
	}
	if err := db.Order("class_id").Find(&ref.Classes).Error; err != nil {
		return ref, fmt.Errorf("failed to load classes: %w", err)
	}
	if err := db.Order("trainer_id").Find(&ref.Trainers).Error; err != nil {
		return ref, fmt.Errorf("failed to load trainers: %w", err)
	}

	return ref, nil
}

// DefaultBranches returns the seven-branch chain the generators are
// tuned for: branch-specific rating spreads and activity boosts key on
// these ids.
func DefaultBranches() []models.Branch {
	return []models.Branch{
		{BranchID: 1, BranchName: "GymChain London Central", City: "London", StreetAddress: "12 Borough High Street", OpeningDate: date(2022, 1, 1)},
		{BranchID: 2, BranchName: "GymChain Manchester", City: "Manchester", StreetAddress: "48 Deansgate", OpeningDate: date(2022, 2, 14)},
		{BranchID: 3, BranchName: "GymChain Birmingham", City: "Birmingham", StreetAddress: "230 Broad Street", OpeningDate: date(2022, 3, 7)},
		{BranchID: 4, BranchName: "GymChain Leeds", City: "Leeds", StreetAddress: "15 Call Lane", OpeningDate: date(2022, 4, 25)},
		{BranchID: 5, BranchName: "GymChain Bristol", City: "Bristol", StreetAddress: "77 Park Street", OpeningDate: date(2022, 6, 1)},
		{BranchID: 6, BranchName: "GymChain Glasgow", City: "Glasgow", StreetAddress: "101 Buchanan Street", OpeningDate: date(2022, 7, 18)},
		{BranchID: 7, BranchName: "GymChain Edinburgh", City: "Edinburgh", StreetAddress: "5 Lothian Road", OpeningDate: date(2022, 9, 5)},
	}
}

// DefaultMembershipTypes returns the membership catalog.
func DefaultMembershipTypes() []models.MembershipType {
	return []models.MembershipType{
		{MembershipTypeID: 1, MembershipType: "Monthly", MembershipPrice: 29.99, MembershipDuration: 30},
		{MembershipTypeID: 2, MembershipType: "Quarterly", MembershipPrice: 79.99, MembershipDuration: 90},
		{MembershipTypeID: 3, MembershipType: "Semi-Annual", MembershipPrice: 149.99, MembershipDuration: 180},
		{MembershipTypeID: 4, MembershipType: "Annual", MembershipPrice: 279.99, MembershipDuration: 365},
	}
}

// DefaultClasses returns the class catalog. Durations stay within the
// schema's 30-60 minute check constraint.
func DefaultClasses() []models.Class {
	return []models.Class{
		{ClassID: 1, ClassName: "Spin Studio", ClassType: models.ClassTypeCardio, Duration: 45},
		{ClassID: 2, ClassName: "HIIT Blast", ClassType: models.ClassTypeCardio, Duration: 30},
		{ClassID: 3, ClassName: "Treadmill Intervals", ClassType: models.ClassTypeCardio, Duration: 40},
		{ClassID: 4, ClassName: "Full Body Strength", ClassType: models.ClassTypeStrength, Duration: 60},
		{ClassID: 5, ClassName: "Kettlebell Circuit", ClassType: models.ClassTypeStrength, Duration: 45},
		{ClassID: 6, ClassName: "Powerlifting Basics", ClassType: models.ClassTypeStrength, Duration: 60},
		{ClassID: 7, ClassName: "Vinyasa Yoga", ClassType: models.ClassTypeFlexibility, Duration: 60},
		{ClassID: 8, ClassName: "Pilates Core", ClassType: models.ClassTypeFlexibility, Duration: 45},
		{ClassID: 9, ClassName: "Mobility Flow", ClassType: models.ClassTypeFlexibility, Duration: 40},
		{ClassID: 10, ClassName: "Deep Stretch", ClassType: models.ClassTypeStretching, Duration: 30},
		{ClassID: 11, ClassName: "Foam Rolling Recovery", ClassType: models.ClassTypeStretching, Duration: 30},
	}
}

// GenerateTrainers produces 2-5 trainers per branch, joining within
// four months of the branch opening.
func GenerateTrainers(branches []models.Branch, seed uint64) []models.Trainer {
	rng := generator.NewRNG(seed)
	faker := gofakeit.New(seed)
	specialisations := []string{
		models.ClassTypeCardio,
		models.ClassTypeStrength,
		models.ClassTypeFlexibility,
		models.ClassTypeStretching,
	}

	var trainers []models.Trainer
	trainerID := uint(1)

	for _, branch := range branches {
		numTrainers := rng.IntRange(2, 5)
		for i := 0; i < numTrainers; i++ {
			gender := "M"
			if rng.Chance(0.5) {
				gender = "F"
			}

			trainers = append(trainers, models.Trainer{
				TrainerID:      trainerID,
				BranchID:       branch.BranchID,
				FirstName:      faker.FirstName(),
				LastName:       faker.LastName(),
				Gender:         gender,
				DateOfBirth:    rng.DateBetween(date(1970, 1, 1), date(1998, 12, 31)),
				Specialisation: specialisations[rng.Intn(len(specialisations))],
				JoinDate:       branch.OpeningDate.AddDate(0, 0, rng.Intn(120)),
			})
			trainerID++
		}
	}

	return trainers
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
