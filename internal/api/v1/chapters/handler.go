package chapters

import (
	"errors"
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListChapters godoc
// @Summary List chapters for a subject
// @Description Returns the subject's chapter list in syllabus order, annotated per the caller's progress and lock state.
// @Tags chapters
// @Produce json
// @Security ApiKeyAuth
// @Param board query string true "Board"
// @Param classLevel query string true "Class level"
// @Param stream query string false "Stream (senior levels only)"
// @Param subject query string true "Subject"
// @Success 200 {object} utils.Response{data=[]ChapterView}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /chapters [get]
func ListChapters(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var query SyllabusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid syllabus query"))
		return
	}

	list, err := services.FindChapters(query.Ref())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load chapters"))
		return
	}

	settings := services.GetSettings(c.Request.Context())
	progress := u.ProgressFor(query.Subject)

	views := make([]ChapterView, 0, len(list))
	for i := range list {
		ch := &list[i]
		view := ChapterView{
			ID:        ch.ID,
			Title:     ch.Title,
			Position:  ch.Position,
			Locked:    services.ChapterLocked(&u, ch, i, settings),
			Current:   i == progress.CurrentChapterIndex,
			Completed: i < progress.CurrentChapterIndex,
		}
		if view.Locked {
			if ch.IsLocked {
				view.LockReason = "admin"
			} else {
				view.LockReason = "sequence"
			}
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Chapters retrieved", views))
}

// CreateChapter godoc
// @Summary Create chapter
// @Description Appends a chapter at the end of the subject's syllabus. Admin only.
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param chapter body CreateChapterInput true "Chapter details"
// @Success 200 {object} utils.Response{data=models.Chapter}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/chapters [post]
func CreateChapter(c *gin.Context) {
	var input CreateChapterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	ref := services.SyllabusRef{
		Board:      input.Board,
		ClassLevel: input.ClassLevel,
		Stream:     input.Stream,
		Subject:    input.Subject,
	}
	chapter, err := services.CreateChapter(ref, input.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create chapter"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Chapter created", chapter))
}

// UpdateChapter godoc
// @Summary Update chapter
// @Description Renames a chapter or toggles its explicit lock. Admin only.
// @Tags chapters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Chapter ID"
// @Param chapter body UpdateChapterInput true "Fields to update"
// @Success 200 {object} utils.Response{data=models.Chapter}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/chapters/{id} [put]
func UpdateChapter(c *gin.Context) {
	var input UpdateChapterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	chapter, err := services.UpdateChapter(c.Param("id"), input.Title, input.IsLocked)
	if err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Chapter not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update chapter"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Chapter updated", chapter))
}

// DeleteChapter godoc
// @Summary Delete chapter
// @Description Removes a chapter and closes the position gap in its syllabus. Admin only.
// @Tags chapters
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Chapter ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/chapters/{id} [delete]
func DeleteChapter(c *gin.Context) {
	if err := services.DeleteChapter(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrChapterNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Chapter not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete chapter"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Chapter deleted", nil))
}

func currentUser(c *gin.Context) (models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	return user.(models.User), true
}
