package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/gymchain/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models, then layers on the
// constraints and indexes GORM doesn't create from struct tags.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	for _, model := range models.AllModels() {
		stmt := &gorm.Statement{DB: db}
		tableName := ""
		if err := stmt.Parse(model); err == nil {
			tableName = stmt.Schema.Table
		}

		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", tableName, err)
		}
		log.Printf("  ✓ Migrated table: %s", tableName)
	}

	// SQLite cannot add constraints through ALTER TABLE; the loader's
	// validation pass guards the same invariants there.
	if db.Dialector.Name() == "postgres" {
		log.Println("Creating foreign key constraints...")
		if err := CreateForeignKeys(db); err != nil {
			log.Printf("Warning: Some foreign keys could not be created: %v", err)
		}

		log.Println("Adding check constraints...")
		if err := AddCheckConstraints(db); err != nil {
			log.Printf("Warning: Some check constraints could not be added: %v", err)
		}
	} else {
		log.Println("Skipping ALTER TABLE constraints (not supported by this driver)")
	}

	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		log.Printf("Warning: Some indexes could not be created: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// CreateForeignKeys creates all foreign key constraints
func CreateForeignKeys(db *gorm.DB) error {
	foreignKeys := []struct {
		table     string
		name      string
		column    string
		refTable  string
		refColumn string
	}{
		{"members", "fk_members_branch", "branch_id", "branch", "branch_id"},
		{"trainers", "fk_trainers_branch", "branch_id", "branch", "branch_id"},

		{"memberships", "fk_memberships_member", "member_id", "members", "member_id"},
		{"memberships", "fk_memberships_type", "membership_type_id", "membership_type", "membership_type_id"},

		{"checkins", "fk_checkins_member", "member_id", "members", "member_id"},

		{"class_sessions", "fk_class_sessions_class", "class_id", "class", "class_id"},
		{"class_sessions", "fk_class_sessions_trainer", "trainer_id", "trainers", "trainer_id"},

		{"class_attendance", "fk_class_attendance_member", "member_id", "members", "member_id"},
		{"class_attendance", "fk_class_attendance_session", "session_id", "class_sessions", "session_id"},
	}

	for _, fk := range foreignKeys {
		// Check if foreign key already exists
		var count int64
		db.Raw(`
			SELECT COUNT(*) FROM information_schema.table_constraints
			WHERE constraint_type = 'FOREIGN KEY'
			AND table_name = ?
			AND constraint_name = ?
		`, fk.table, fk.name).Scan(&count)

		if count > 0 {
			log.Printf("  ✓ Foreign key already exists: %s", fk.name)
			continue
		}

		query := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.table, fk.name, fk.column, fk.refTable, fk.refColumn,
		)

		if err := db.Exec(query).Error; err != nil {
			log.Printf("  ⚠ Failed to create foreign key %s: %v", fk.name, err)
		} else {
			log.Printf("  ✓ Created foreign key: %s", fk.name)
		}
	}

	return nil
}

// AddCheckConstraints adds the destination schema's check constraints:
// bounded ratings, valid genders and statuses, positive prices and
// durations, ordered time ranges.
func AddCheckConstraints(db *gorm.DB) error {
	constraints := []struct {
		name  string
		query string
	}{
		{"check_member_gender", "ALTER TABLE members ADD CONSTRAINT check_member_gender CHECK (member_gender IN ('M', 'F', 'Other'))"},
		{"check_trainer_gender", "ALTER TABLE trainers ADD CONSTRAINT check_trainer_gender CHECK (trainer_gender IN ('M', 'F', 'Other'))"},

		{"check_membership_price", "ALTER TABLE membership_type ADD CONSTRAINT check_membership_price CHECK (membership_price >= 0)"},
		{"check_membership_duration", "ALTER TABLE membership_type ADD CONSTRAINT check_membership_duration CHECK (membership_duration > 0)"},
		{"check_payment_amount", "ALTER TABLE memberships ADD CONSTRAINT check_payment_amount CHECK (payment_amount >= 0)"},
		{"check_membership_dates", "ALTER TABLE memberships ADD CONSTRAINT check_membership_dates CHECK (membership_end_date >= membership_start_date)"},

		{"check_class_duration", "ALTER TABLE class ADD CONSTRAINT check_class_duration CHECK (class_duration BETWEEN 30 AND 60)"},

		{"check_visit_rating", "ALTER TABLE checkins ADD CONSTRAINT check_visit_rating CHECK (visit_rating BETWEEN 1 AND 5)"},
		{"check_checkin_order", "ALTER TABLE checkins ADD CONSTRAINT check_checkin_order CHECK (checkout_stamp > checkin_stamp)"},

		{"check_session_capacity", "ALTER TABLE class_sessions ADD CONSTRAINT check_session_capacity CHECK (max_capacity > 0)"},
		{"check_session_order", "ALTER TABLE class_sessions ADD CONSTRAINT check_session_order CHECK (end_time > start_time)"},
		{"check_session_status", "ALTER TABLE class_sessions ADD CONSTRAINT check_session_status CHECK (status IN ('Completed', 'Cancelled'))"},

		{"check_class_rating", "ALTER TABLE class_attendance ADD CONSTRAINT check_class_rating CHECK (class_rating BETWEEN 1 AND 5)"},
	}

	for _, c := range constraints {
		if err := db.Exec(c.query).Error; err != nil {
			// Check if constraint already exists (PostgreSQL error code 42710)
			if !strings.Contains(err.Error(), "already exists") && !strings.Contains(err.Error(), "42710") {
				log.Printf("  ⚠ Failed to add constraint %s: %v", c.name, err)
			}
		} else {
			log.Printf("  ✓ Added constraint: %s", c.name)
		}
	}

	return nil
}

// CreateIndexes creates performance indexes for the analytical joins
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_members_branch", "CREATE INDEX IF NOT EXISTS idx_members_branch ON members(branch_id)"},
		{"idx_trainers_branch", "CREATE INDEX IF NOT EXISTS idx_trainers_branch ON trainers(branch_id)"},

		{"idx_memberships_member", "CREATE INDEX IF NOT EXISTS idx_memberships_member ON memberships(member_id)"},
		{"idx_memberships_payment_date", "CREATE INDEX IF NOT EXISTS idx_memberships_payment_date ON memberships(payment_date)"},
		{"idx_memberships_end_date", "CREATE INDEX IF NOT EXISTS idx_memberships_end_date ON memberships(membership_end_date)"},

		{"idx_checkins_member", "CREATE INDEX IF NOT EXISTS idx_checkins_member ON checkins(member_id)"},
		{"idx_checkins_stamp", "CREATE INDEX IF NOT EXISTS idx_checkins_stamp ON checkins(checkin_stamp)"},

		{"idx_sessions_class", "CREATE INDEX IF NOT EXISTS idx_sessions_class ON class_sessions(class_id)"},
		{"idx_sessions_trainer", "CREATE INDEX IF NOT EXISTS idx_sessions_trainer ON class_sessions(trainer_id)"},
		{"idx_sessions_start", "CREATE INDEX IF NOT EXISTS idx_sessions_start ON class_sessions(start_time)"},

		{"idx_attendance_session", "CREATE INDEX IF NOT EXISTS idx_attendance_session ON class_attendance(session_id)"},
	}

	successCount := 0
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			log.Printf("  ⚠ Failed to create index %s: %v", idx.name, err)
		} else {
			successCount++
		}
	}

	if successCount > 0 {
		log.Printf("Successfully created %d indexes", successCount)
	}

	return nil
}
