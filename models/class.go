package models

// Class types used by the attendance allocator's rate bands
const (
	ClassTypeCardio      = "Cardio"
	ClassTypeStrength    = "Strength"
	ClassTypeFlexibility = "Flexibility"
	ClassTypeStretching  = "Stretching"
)

// Class represents the class catalog table
type Class struct {
	ClassID   uint   `gorm:"primaryKey;column:class_id" json:"class_id"`
	ClassName string `gorm:"column:class_name;type:varchar(100);not null;unique" json:"name"`
	ClassType string `gorm:"column:class_type;type:varchar(50);not null" json:"type"`
	Duration  int    `gorm:"column:class_duration;not null" json:"duration"` // minutes
}

// TableName specifies the table name for Class
func (Class) TableName() string {
	return "class"
}
