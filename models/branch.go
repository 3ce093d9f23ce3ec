package models

import "time"

// Branch represents the branch table: one physical gym location,
// the top-level partition for members, trainers and sessions.
type Branch struct {
	BranchID      uint      `gorm:"primaryKey;column:branch_id" json:"branch_id"`
	BranchName    string    `gorm:"type:varchar(100);not null;unique" json:"branch_name"`
	City          string    `gorm:"type:varchar(100);not null" json:"city"`
	StreetAddress string    `gorm:"type:varchar(200);not null;unique" json:"street_address"`
	OpeningDate   time.Time `gorm:"type:date;not null" json:"opening_date"`
}

// TableName specifies the table name for Branch
func (Branch) TableName() string {
	return "branch"
}
