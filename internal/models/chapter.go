package models

import "time"

// Chapter is one entry of a subject's syllabus. Position is the chapter's
// zero-based order within (board, class level, stream, subject) and drives
// sequential-unlock gating. IsLocked is the explicit admin override.
type Chapter struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Board      string `gorm:"type:varchar(20);index:idx_syllabus" json:"board"`
	ClassLevel string `gorm:"type:varchar(10);index:idx_syllabus" json:"classLevel"`
	Stream     string `gorm:"type:varchar(20);index:idx_syllabus" json:"stream"`
	Subject    string `gorm:"type:varchar(50);index:idx_syllabus" json:"subject"`
	Title      string `gorm:"not null" json:"title"`
	Position   int    `gorm:"not null;default:0" json:"position"`
	IsLocked   bool   `gorm:"default:false" json:"isLocked"`
}
