package content

import (
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
)

// ChapterTarget addresses the chapter a write applies to.
type ChapterTarget struct {
	Board      string `json:"board" binding:"required"`
	ClassLevel string `json:"classLevel" binding:"required"`
	Stream     string `json:"stream"`
	Subject    string `json:"subject" binding:"required"`
	ChapterID  string `json:"chapterId" binding:"required"`
}

func (t ChapterTarget) Ref() services.ContentRef {
	return services.ContentRef{
		Board:      t.Board,
		ClassLevel: t.ClassLevel,
		Stream:     t.Stream,
		Subject:    t.Subject,
		ChapterID:  t.ChapterID,
	}
}

// SaveContentInput is a partial content update. Empty sections are left
// untouched by the merge; sending a section replaces it whole.
type SaveContentInput struct {
	ChapterTarget
	LessonText    string             `json:"lessonText,omitempty"`
	FreeLink      string             `json:"freeLink,omitempty"`
	PremiumLink   string             `json:"premiumLink,omitempty"`
	Price         *int               `json:"price,omitempty"`
	VideoPlaylist []models.VideoItem `json:"videoPlaylist,omitempty"`
	ManualMCQData []models.MCQItem   `json:"manualMCQData,omitempty"`
	WatermarkText string             `json:"watermarkText,omitempty"`
}

func (in SaveContentInput) Patch() *models.ContentRecord {
	return &models.ContentRecord{
		LessonText:    in.LessonText,
		FreeLink:      in.FreeLink,
		PremiumLink:   in.PremiumLink,
		Price:         in.Price,
		VideoPlaylist: in.VideoPlaylist,
		ManualMCQData: in.ManualMCQData,
		WatermarkText: in.WatermarkText,
	}
}

// LinkImportInput is a batch of PDF link rows.
type LinkImportInput struct {
	Rows []services.LinkImportRow `json:"rows" binding:"required,min=1"`
}

// MCQImportInput carries a tab-separated MCQ batch for one chapter.
type MCQImportInput struct {
	ChapterTarget
	Text string `json:"text" binding:"required"`
}

// ImportResult reports how many rows survived a bulk import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
