package models

import "time"

// ClassAttendance represents the class_attendance table: one
// (member, session) pairing with an optional 1-5 rating.
type ClassAttendance struct {
	MemberID  uint `gorm:"primaryKey;column:member_id" json:"member_id"`
	SessionID uint `gorm:"primaryKey;column:session_id" json:"session_id"`
	Rating    *int `gorm:"column:class_rating" json:"rating,omitempty"`

	// Generation-time columns used by the rating back-fill pass,
	// dropped by the schema adapter before load
	ClassID        uint      `gorm:"-" json:"class_id"`
	BranchID       uint      `gorm:"-" json:"branch_id"`
	SessionStart   time.Time `gorm:"-" json:"session_start"`
	SessionEnd     time.Time `gorm:"-" json:"session_end"`
	AttendanceRate float64   `gorm:"-" json:"attendance_rate"`
}

// TableName specifies the table name for ClassAttendance
func (ClassAttendance) TableName() string {
	return "class_attendance"
}
