package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gymchain/generator"
	"github.com/gymchain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedReferenceData(db, 42))
	require.NoError(t, SeedReferenceData(db, 42))

	var branchCount int64
	db.Model(&models.Branch{}).Count(&branchCount)
	assert.Equal(t, int64(7), branchCount)

	ref, err := LoadReference(db)
	require.NoError(t, err)
	assert.Len(t, ref.Branches, 7)
	assert.NotEmpty(t, ref.MembershipTypes)
	assert.NotEmpty(t, ref.Classes)
	assert.NotEmpty(t, ref.Trainers)
}

func TestLoadDatasetEndToEnd(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedReferenceData(db, 42))

	ref, err := LoadReference(db)
	require.NoError(t, err)

	cfg := generator.Config{
		HorizonStart: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonEnd:   time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC),
		MinMembers:   5,
		MaxMembers:   8,
		Seed:         42,
	}
	pipeline, err := generator.NewPipeline(cfg)
	require.NoError(t, err)

	ds, err := pipeline.Run(ref)
	require.NoError(t, err)

	require.NoError(t, LoadDataset(db, ds, ref, cfg.HorizonEnd))

	var memberCount, paymentCount, checkInCount int64
	db.Model(&models.Member{}).Count(&memberCount)
	db.Model(&models.Membership{}).Count(&paymentCount)
	db.Model(&models.CheckIn{}).Count(&checkInCount)
	assert.Equal(t, int64(len(ds.Members)), memberCount)
	assert.Equal(t, int64(len(ds.Memberships)), paymentCount)
	assert.Equal(t, int64(len(ds.CheckIns)), checkInCount)

	// The analytical joins resolve: every attendance row pairs a real
	// member with a real completed session.
	var orphanCount int64
	db.Table("class_attendance").
		Joins("LEFT JOIN class_sessions ON class_sessions.session_id = class_attendance.session_id").
		Where("class_sessions.session_id IS NULL").
		Count(&orphanCount)
	assert.Equal(t, int64(0), orphanCount)
}

func TestLoadDatasetRefusesInvalidData(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedReferenceData(db, 42))

	ref, err := LoadReference(db)
	require.NoError(t, err)

	horizonEnd := time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC)
	ds := &generator.Dataset{
		Members: []models.Member{
			// Unknown branch.
			{MemberID: 1, BranchID: 99, Gender: "M", Email: "a@gmail.com", Phone: "0700000000",
				JoinDate: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	err = LoadDataset(db, ds, ref, horizonEnd)
	require.Error(t, err)

	var memberCount int64
	db.Model(&models.Member{}).Count(&memberCount)
	assert.Equal(t, int64(0), memberCount, "nothing may be written when validation fails")
}
