package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/store"
	"github.com/f57725199-cmyk/stuadm/pkg/logger"

	"go.uber.org/zap"
)

// ContentRef addresses one chapter's content bundle. DeriveContentKey is
// the only way a ref becomes a storage key.
type ContentRef struct {
	Board      string
	ClassLevel string
	Stream     string
	Subject    string
	ChapterID  string
}

func (r ContentRef) Key() string {
	return store.DeriveContentKey(r.Board, r.ClassLevel, r.Stream, r.Subject, r.ChapterID)
}

// GetChapterContent reads a chapter's content bundle. A nil result is the
// normal empty state; callers cannot tell it apart from an unreachable
// store, and must not try.
func GetChapterContent(ctx context.Context, ref ContentRef) *models.ContentRecord {
	return store.ReadContent(ctx, ref.Key())
}

// SaveChapterContent applies a partial content update through the
// read-merge-write path so sibling sections survive.
func SaveChapterContent(ctx context.Context, ref ContentRef, patch *models.ContentRecord) (*models.ContentRecord, error) {
	return store.MergeContent(ctx, ref.Key(), patch)
}

// LinkImportRow is one row of a bulk PDF-link upload.
type LinkImportRow struct {
	Board       string `json:"board"`
	ClassLevel  string `json:"classLevel"`
	Stream      string `json:"stream"`
	Subject     string `json:"subject"`
	ChapterID   string `json:"chapterId"`
	FreeLink    string `json:"freeLink"`
	PremiumLink string `json:"premiumLink"`
	Price       *int   `json:"price,omitempty"`
}

func (r LinkImportRow) valid() bool {
	return r.Board != "" && r.ClassLevel != "" && r.Subject != "" && r.ChapterID != "" &&
		(r.FreeLink != "" || r.PremiumLink != "")
}

// BulkImportLinks merges a batch of link rows into their content records.
// Malformed rows are skipped individually; the count of successes is
// returned.
func BulkImportLinks(ctx context.Context, rows []LinkImportRow) int {
	imported := 0
	for i, row := range rows {
		if !row.valid() {
			logger.Log.Warn("skipping invalid link import row", zap.Int("row", i))
			continue
		}
		ref := ContentRef{
			Board:      row.Board,
			ClassLevel: row.ClassLevel,
			Stream:     row.Stream,
			Subject:    row.Subject,
			ChapterID:  row.ChapterID,
		}
		patch := &models.ContentRecord{
			FreeLink:    row.FreeLink,
			PremiumLink: row.PremiumLink,
			Price:       row.Price,
		}
		if _, err := store.MergeContent(ctx, ref.Key(), patch); err != nil {
			logger.Log.Warn("link import row failed", zap.Int("row", i), zap.Error(err))
			continue
		}
		imported++
	}
	return imported
}

// ParseMCQRows parses a tab-separated MCQ batch: question, four options, a
// 1-based correct-answer column and an optional explanation. Malformed rows
// are dropped.
func ParseMCQRows(text string) []models.MCQItem {
	var items []models.MCQItem
	for _, row := range strings.Split(strings.TrimSpace(text), "\n") {
		cols := strings.Split(row, "\t")
		if len(cols) < 6 {
			continue
		}
		answer, err := strconv.Atoi(strings.TrimSpace(cols[5]))
		if err != nil || answer < 1 || answer > 4 {
			continue
		}
		item := models.MCQItem{
			Question:      strings.TrimSpace(cols[0]),
			Options:       []string{cols[1], cols[2], cols[3], cols[4]},
			CorrectAnswer: answer - 1,
		}
		if item.Question == "" {
			continue
		}
		if len(cols) > 6 {
			item.Explanation = strings.TrimSpace(cols[6])
		}
		items = append(items, item)
	}
	return items
}

// ImportMCQs appends a parsed TSV batch to a chapter's question set through
// the merge path. Returns how many questions were imported.
func ImportMCQs(ctx context.Context, ref ContentRef, text string) (int, error) {
	items := ParseMCQRows(text)
	if len(items) == 0 {
		return 0, nil
	}

	existing := store.ReadContent(ctx, ref.Key())
	if existing == nil {
		existing = &models.ContentRecord{}
	}

	merged := append(existing.ManualMCQData, items...)
	if _, err := store.MergeContent(ctx, ref.Key(), &models.ContentRecord{ManualMCQData: merged}); err != nil {
		return 0, err
	}
	return len(items), nil
}
