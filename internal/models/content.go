package models

import (
	"time"

	"gorm.io/datatypes"
)

// MCQItem is a single multiple-choice question. CorrectAnswer is a
// zero-based index into Options.
type MCQItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// VideoItem is one entry of a chapter's video playlist. A nil Price means
// the item falls back to the default video cost from system settings.
type VideoItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Price *int   `json:"price,omitempty"`
}

// ContentRecord is the full content bundle stored under one content key.
// Each section belongs to a different view (notes, videos, MCQs, lesson
// text); partial updates must go through Merge so sibling sections survive.
type ContentRecord struct {
	LessonText    string      `json:"lessonText,omitempty"`
	FreeLink      string      `json:"freeLink,omitempty"`
	PremiumLink   string      `json:"premiumLink,omitempty"`
	Price         *int        `json:"price,omitempty"`
	VideoPlaylist []VideoItem `json:"videoPlaylist,omitempty"`
	ManualMCQData []MCQItem   `json:"manualMcqData,omitempty"`
	WatermarkText string      `json:"watermarkText,omitempty"`
}

// Merge lays the patch's populated sections over the receiver. Zero-valued
// sections of the patch leave the existing sections untouched.
func (r *ContentRecord) Merge(patch *ContentRecord) {
	if patch == nil {
		return
	}
	if patch.LessonText != "" {
		r.LessonText = patch.LessonText
	}
	if patch.FreeLink != "" {
		r.FreeLink = patch.FreeLink
	}
	if patch.PremiumLink != "" {
		r.PremiumLink = patch.PremiumLink
	}
	if patch.Price != nil {
		r.Price = patch.Price
	}
	if patch.VideoPlaylist != nil {
		r.VideoPlaylist = patch.VideoPlaylist
	}
	if patch.ManualMCQData != nil {
		r.ManualMCQData = patch.ManualMCQData
	}
	if patch.WatermarkText != "" {
		r.WatermarkText = patch.WatermarkText
	}
}

// IsEmpty reports whether no section holds content yet. Admins hitting an
// empty record are routed to the edit affordance instead of a viewer.
func (r *ContentRecord) IsEmpty() bool {
	return r.LessonText == "" && r.FreeLink == "" && r.PremiumLink == "" &&
		len(r.VideoPlaylist) == 0 && len(r.ManualMCQData) == 0
}

// ContentDocument is the durable-store row backing one content key.
type ContentDocument struct {
	Key       string         `gorm:"primaryKey;type:varchar(255)"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
