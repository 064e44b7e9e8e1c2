package models

import "github.com/google/uuid"

// Parasha is a weekly Torah portion.
type Parasha struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:30;not null;uniqueIndex" json:"name"`
}

// Aliya segments within a parasha.
const (
	SegmentRishon = iota + 1
	SegmentSheni
	SegmentShlishi
	SegmentRvii
	SegmentHamishi
	SegmentShishi
	SegmentShvii
	SegmentHaftorah
)

type Segment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ParashaID   uuid.UUID `gorm:"type:uuid;not null;index" json:"parasha"`
	SegmentType int       `gorm:"not null" json:"segment_type"`
	StartPos    string    `gorm:"size:6" json:"start_pos"`
	EndPos      string    `gorm:"size:6" json:"end_pos"`
	TotalPsukim int       `json:"total_psukim"`
}
