package models

import "time"

// MembershipType represents the membership_type catalog table
type MembershipType struct {
	MembershipTypeID   uint    `gorm:"primaryKey;column:membership_type_id" json:"membership_type_id"`
	MembershipType     string  `gorm:"column:membership_type;type:varchar(50);not null;unique" json:"membership_type"`
	MembershipPrice    float64 `gorm:"type:decimal(8,2);not null" json:"membership_price"`
	MembershipDuration int     `gorm:"not null" json:"membership_duration"` // days
}

// TableName specifies the table name for MembershipType
func (MembershipType) TableName() string {
	return "membership_type"
}

// Membership represents the memberships table: one paid membership
// period for a member. Consecutive periods of a member never overlap;
// a gap between them is a lapsed membership.
type Membership struct {
	MembershipID     uint      `gorm:"primaryKey;column:membership_id" json:"payment_id"`
	MemberID         uint      `gorm:"column:member_id;not null" json:"member_id"`
	MembershipTypeID uint      `gorm:"column:membership_type_id;not null" json:"membership_type_id"`
	StartDate        time.Time `gorm:"column:membership_start_date;type:date;not null" json:"start_date"`
	EndDate          time.Time `gorm:"column:membership_end_date;type:date;not null" json:"end_date"`
	PaymentDate      time.Time `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	PaymentAmount    float64   `gorm:"type:decimal(8,2);not null" json:"payment_amount"`
	PaymentMethod    string    `gorm:"type:varchar(20);not null" json:"payment_method"`

	// Generation-time columns, dropped by the schema adapter before load
	BranchID     uint `gorm:"-" json:"branch_id"`
	DurationDays int  `gorm:"-" json:"duration_days"`
}

// TableName specifies the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
