package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&Branch{},
		&MembershipType{},
		&Class{},

		// 2. Tables with single dependencies
		&Member{},  // depends on: Branch
		&Trainer{}, // depends on: Branch

		// 3. Tables with multiple dependencies
		&Membership{},   // depends on: Member, MembershipType
		&CheckIn{},      // depends on: Member
		&ClassSession{}, // depends on: Class, Trainer

		// 4. Junction tables
		&ClassAttendance{}, // depends on: Member, ClassSession
	}
}
