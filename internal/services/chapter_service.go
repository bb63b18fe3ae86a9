package services

import (
	"errors"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrChapterNotFound = errors.New("chapter not found")

// SyllabusRef addresses one subject's ordered chapter list.
type SyllabusRef struct {
	Board      string
	ClassLevel string
	Stream     string
	Subject    string
}

// FindChapters returns the syllabus in position order.
func FindChapters(ref SyllabusRef) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := database.DB.
		Where("board = ? AND class_level = ? AND stream = ? AND subject = ?",
			ref.Board, ref.ClassLevel, ref.Stream, ref.Subject).
		Order("position asc").
		Find(&chapters).Error
	return chapters, err
}

// CreateChapter appends a chapter to the end of the syllabus.
func CreateChapter(ref SyllabusRef, title string) (*models.Chapter, error) {
	var maxPos int
	row := database.DB.Model(&models.Chapter{}).
		Where("board = ? AND class_level = ? AND stream = ? AND subject = ?",
			ref.Board, ref.ClassLevel, ref.Stream, ref.Subject).
		Select("COALESCE(MAX(position), -1)").Row()
	if err := row.Scan(&maxPos); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		ID:         uuid.New().String(),
		Board:      ref.Board,
		ClassLevel: ref.ClassLevel,
		Stream:     ref.Stream,
		Subject:    ref.Subject,
		Title:      title,
		Position:   maxPos + 1,
	}
	if err := database.DB.Create(chapter).Error; err != nil {
		return nil, err
	}
	return chapter, nil
}

// UpdateChapter renames a chapter or toggles its explicit lock flag.
func UpdateChapter(id string, title *string, isLocked *bool) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := database.DB.First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if title != nil && *title != "" {
		updates["title"] = *title
	}
	if isLocked != nil {
		updates["is_locked"] = *isLocked
	}
	if len(updates) == 0 {
		return &chapter, nil
	}

	if err := database.DB.Model(&chapter).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// DeleteChapter removes a chapter and closes the position gap it leaves.
func DeleteChapter(id string) error {
	var chapter models.Chapter
	if err := database.DB.First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChapterNotFound
		}
		return err
	}

	if err := database.DB.Delete(&chapter).Error; err != nil {
		return err
	}

	return database.DB.Model(&models.Chapter{}).
		Where("board = ? AND class_level = ? AND stream = ? AND subject = ? AND position > ?",
			chapter.Board, chapter.ClassLevel, chapter.Stream, chapter.Subject, chapter.Position).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}
