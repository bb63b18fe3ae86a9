package content

import (
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// SaveContent godoc
// @Summary Save chapter content
// @Description Merges a partial content update into the chapter's record. Sections not present in the body are preserved. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param content body SaveContentInput true "Content update"
// @Success 200 {object} utils.Response{data=models.ContentRecord}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/content [put]
func SaveContent(c *gin.Context) {
	var input SaveContentInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	merged, err := services.SaveChapterContent(c.Request.Context(), input.Ref(), input.Patch())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to save content"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Content saved", merged))
}

// ImportLinks godoc
// @Summary Bulk import PDF links
// @Description Merges a batch of link rows into their chapters. Malformed rows are skipped; the count of successes is returned. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch body LinkImportInput true "Link rows"
// @Success 200 {object} utils.Response{data=ImportResult}
// @Failure 400 {object} utils.Response
// @Router /admin/content/links [post]
func ImportLinks(c *gin.Context) {
	var input LinkImportInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	imported := services.BulkImportLinks(c.Request.Context(), input.Rows)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Links imported", ImportResult{
		Imported: imported,
		Skipped:  len(input.Rows) - imported,
	}))
}

// ImportMCQs godoc
// @Summary Import MCQs from tab-separated text
// @Description Parses a pasted tab-separated batch and appends it to the chapter's MCQ bank. Malformed rows are dropped. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch body MCQImportInput true "MCQ batch"
// @Success 200 {object} utils.Response{data=ImportResult}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/content/mcqs [post]
func ImportMCQs(c *gin.Context) {
	var input MCQImportInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	imported, err := services.ImportMCQs(c.Request.Context(), input.Ref(), input.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to import MCQs"))
		return
	}
	if imported == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No valid MCQ rows found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("MCQs imported", ImportResult{Imported: imported}))
}
