package models

import "time"

// CheckIn represents the checkins table: one gym visit. Both
// timestamps fall inside one of the member's membership periods and
// never exceed the data horizon.
type CheckIn struct {
	CheckInID    uint      `gorm:"primaryKey;column:checkin_id" json:"check_in_id"`
	MemberID     uint      `gorm:"column:member_id;not null" json:"member_id"`
	CheckInTime  time.Time `gorm:"column:checkin_stamp;not null" json:"check_in_time"`
	CheckOutTime time.Time `gorm:"column:checkout_stamp" json:"check_out_time"`
	Rating       *int      `gorm:"column:visit_rating" json:"overall_rating,omitempty"`

	// Generation-time column, dropped by the schema adapter before load
	BranchID uint `gorm:"-" json:"branch_id"`
}

// TableName specifies the table name for CheckIn
func (CheckIn) TableName() string {
	return "checkins"
}
