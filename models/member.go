package models

import "time"

// Member represents the members table. Email and phone are globally
// unique across the whole generated population.
type Member struct {
	MemberID    uint      `gorm:"primaryKey;column:member_id" json:"member_id"`
	BranchID    uint      `gorm:"column:branch_id;not null" json:"branch_id"`
	FirstName   string    `gorm:"column:member_first_name;type:varchar(50);not null" json:"first_name"`
	LastName    string    `gorm:"column:member_last_name;type:varchar(50);not null" json:"last_name"`
	DateOfBirth time.Time `gorm:"column:member_date_of_birth;type:date;not null" json:"date_of_birth"`
	Gender      string    `gorm:"column:member_gender;type:varchar(10);not null" json:"gender"`
	Email       string    `gorm:"type:varchar(100);not null;unique" json:"email"`
	Phone       string    `gorm:"type:varchar(10);not null;unique" json:"phone"`
	JoinDate    time.Time `gorm:"column:member_join_date;type:date;not null" json:"join_date"`

	// Relationships - commented out to avoid circular dependency issues during migration
	// Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}
