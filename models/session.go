package models

import "time"

// Session status values
const (
	SessionCompleted = "Completed"
	SessionCancelled = "Cancelled"
)

// ClassSession represents the class_sessions table: one trainer-led
// class occurrence. Sessions at the same branch on the same day keep
// a minimum 30-minute gap between their time ranges.
type ClassSession struct {
	SessionID uint      `gorm:"primaryKey;column:session_id" json:"session_id"`
	ClassID   uint      `gorm:"column:class_id;not null" json:"class_id"`
	TrainerID uint      `gorm:"column:trainer_id;not null" json:"trainer_id"`
	StartTime time.Time `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;not null" json:"end_time"`
	Capacity  int       `gorm:"column:max_capacity;not null" json:"capacity"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`

	// Generation-time columns, dropped by the schema adapter before load
	SessionDate time.Time `gorm:"-" json:"session_date"`
	BranchID    uint      `gorm:"-" json:"branch_id"`
}

// TableName specifies the table name for ClassSession
func (ClassSession) TableName() string {
	return "class_sessions"
}
