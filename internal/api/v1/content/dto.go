package content

import (
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
)

// ContentQuery addresses one chapter's content bundle.
type ContentQuery struct {
	Board      string `form:"board" binding:"required"`
	ClassLevel string `form:"classLevel" binding:"required"`
	Stream     string `form:"stream"`
	Subject    string `form:"subject" binding:"required"`
	ChapterID  string `form:"chapterId" binding:"required"`
}

func (q ContentQuery) Ref() services.ContentRef {
	return services.ContentRef{
		Board:      q.Board,
		ClassLevel: q.ClassLevel,
		Stream:     q.Stream,
		Subject:    q.Subject,
		ChapterID:  q.ChapterID,
	}
}

// VideoItemView is one playlist entry with the caller's access decision.
// URL is redacted unless the decision is FREE; locked URLs are only handed
// out through the unlock endpoint.
type VideoItemView struct {
	Index  int                     `json:"index"`
	Title  string                  `json:"title"`
	Price  int                     `json:"price"`
	Access services.AccessDecision `json:"access"`
	URL    string                  `json:"url,omitempty"`
}

// ContentResponse is the chapter bundle as seen by one caller.
type ContentResponse struct {
	Key           string                   `json:"key"`
	Empty         bool                     `json:"empty"`
	EditRequired  bool                     `json:"editRequired,omitempty"`
	LessonText    string                   `json:"lessonText,omitempty"`
	FreeLink      string                   `json:"freeLink,omitempty"`
	PremiumLink   string                   `json:"premiumLink,omitempty"`
	PdfPrice      int                      `json:"pdfPrice"`
	PdfAccess     *services.AccessDecision `json:"pdfAccess,omitempty"`
	Videos        []VideoItemView          `json:"videos"`
	McqCount      int                      `json:"mcqCount"`
	McqTestCost   int                      `json:"mcqTestCost"`
	McqTestAccess *services.AccessDecision `json:"mcqTestAccess,omitempty"`
	McqQuestions  []models.MCQItem         `json:"mcqQuestions,omitempty"`
	WatermarkText string                   `json:"watermarkText,omitempty"`
}

// Item types accepted by the unlock endpoint.
const (
	ItemTypePdf     = "pdf"
	ItemTypeVideo   = "video"
	ItemTypeMcqTest = "mcq_test"
)

// UnlockInput is a proposed purchase of one priced item. Confirm must be
// true when the caller has auto-deduct disabled; EnableAutoDeduct opts the
// account into future prompt-free debits.
type UnlockInput struct {
	Board            string `json:"board" binding:"required"`
	ClassLevel       string `json:"classLevel" binding:"required"`
	Stream           string `json:"stream"`
	Subject          string `json:"subject" binding:"required"`
	ChapterID        string `json:"chapterId" binding:"required"`
	ItemType         string `json:"itemType" binding:"required,oneof=pdf video mcq_test"`
	VideoIndex       *int   `json:"videoIndex,omitempty"`
	Confirm          bool   `json:"confirm"`
	EnableAutoDeduct bool   `json:"enableAutoDeduct"`
}

func (i UnlockInput) Ref() services.ContentRef {
	return services.ContentRef{
		Board:      i.Board,
		ClassLevel: i.ClassLevel,
		Stream:     i.Stream,
		Subject:    i.Subject,
		ChapterID:  i.ChapterID,
	}
}

// UnlockResponse reports the outcome of an unlock attempt. When
// ConfirmationRequired is set, nothing was debited: the client must show
// the price and current balance and retry with confirm=true. MCQ test
// unlocks deliver the question set directly instead of a URL.
type UnlockResponse struct {
	Unlocked             bool             `json:"unlocked"`
	ConfirmationRequired bool             `json:"confirmationRequired,omitempty"`
	URL                  string           `json:"url,omitempty"`
	Questions            []models.MCQItem `json:"questions,omitempty"`
	Price                int              `json:"price"`
	Credits              int              `json:"credits"`
}
