package chapters

import "github.com/f57725199-cmyk/stuadm/internal/services"

// SyllabusQuery addresses one subject's chapter list.
type SyllabusQuery struct {
	Board      string `form:"board" binding:"required"`
	ClassLevel string `form:"classLevel" binding:"required"`
	Stream     string `form:"stream"`
	Subject    string `form:"subject" binding:"required"`
}

func (q SyllabusQuery) Ref() services.SyllabusRef {
	return services.SyllabusRef{
		Board:      q.Board,
		ClassLevel: q.ClassLevel,
		Stream:     q.Stream,
		Subject:    q.Subject,
	}
}

// ChapterView is one syllabus entry annotated for the requesting user.
// LockReason distinguishes the admin override from sequential gating.
type ChapterView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
	Locked     bool   `json:"locked"`
	LockReason string `json:"lockReason,omitempty"`
	Current    bool   `json:"current"`
	Completed  bool   `json:"completed"`
}

// CreateChapterInput appends a chapter to a syllabus.
type CreateChapterInput struct {
	Board      string `json:"board" binding:"required"`
	ClassLevel string `json:"classLevel" binding:"required"`
	Stream     string `json:"stream"`
	Subject    string `json:"subject" binding:"required"`
	Title      string `json:"title" binding:"required"`
}

// UpdateChapterInput renames a chapter or toggles its explicit lock.
type UpdateChapterInput struct {
	Title    *string `json:"title,omitempty"`
	IsLocked *bool   `json:"isLocked,omitempty"`
}
