package models

import "time"

// Trainer represents the trainers table: branch-affiliated staff
// consumed by the session scheduler as reference data.
type Trainer struct {
	TrainerID      uint      `gorm:"primaryKey;column:trainer_id" json:"trainer_id"`
	BranchID       uint      `gorm:"column:branch_id;not null" json:"branch_id"`
	FirstName      string    `gorm:"column:trainer_first_name;type:varchar(50);not null" json:"first_name"`
	LastName       string    `gorm:"column:trainer_last_name;type:varchar(50);not null" json:"last_name"`
	Gender         string    `gorm:"column:trainer_gender;type:varchar(10);not null" json:"gender"`
	DateOfBirth    time.Time `gorm:"column:trainer_date_of_birth;type:date;not null" json:"date_of_birth"`
	Specialisation string    `gorm:"type:varchar(50);not null" json:"specialisation"`
	JoinDate       time.Time `gorm:"column:trainer_join_date;type:date;not null" json:"join_date"`
}

// TableName specifies the table name for Trainer
func (Trainer) TableName() string {
	return "trainers"
}
