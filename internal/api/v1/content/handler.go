package content

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/internal/services"
	"github.com/f57725199-cmyk/stuadm/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetContent godoc
// @Summary Get chapter content
// @Description Returns the chapter's content bundle with per-section access decisions. URLs the caller is not entitled to are redacted.
// @Tags content
// @Produce json
// @Security ApiKeyAuth
// @Param board query string true "Board"
// @Param classLevel query string true "Class level"
// @Param stream query string false "Stream (senior levels only)"
// @Param subject query string true "Subject"
// @Param chapterId query string true "Chapter ID"
// @Success 200 {object} utils.Response{data=ContentResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /content [get]
func GetContent(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var query ContentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid content query"))
		return
	}

	settings := services.GetSettings(c.Request.Context())
	ref := query.Ref()
	rec := services.GetChapterContent(c.Request.Context(), ref)

	resp := ContentResponse{
		Key:         ref.Key(),
		McqTestCost: settings.McqTestCost,
		Videos:      []VideoItemView{},
	}

	if rec == nil || rec.IsEmpty() {
		resp.Empty = true
		// Admins hitting an unconfigured chapter go straight to the
		// editor instead of a viewer.
		resp.EditRequired = u.Role == models.RoleAdmin
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Content retrieved", resp))
		return
	}

	resp.LessonText = rec.LessonText
	resp.FreeLink = rec.FreeLink
	resp.WatermarkText = rec.WatermarkText

	if rec.PremiumLink != "" {
		item := services.PricedItem{Price: rec.Price, DefaultPrice: settings.DefaultPdfCost}
		decision := services.CanAccess(&u, item)
		resp.PdfPrice = item.EffectivePrice()
		resp.PdfAccess = &decision
		if decision.Verdict == services.AccessFree {
			resp.PremiumLink = rec.PremiumLink
		}
	} else if rec.FreeLink != "" {
		decision := services.CanAccess(&u, services.PricedItem{FreeOnly: true})
		resp.PdfAccess = &decision
	}

	for i, vid := range rec.VideoPlaylist {
		item := services.PricedItem{Price: vid.Price, DefaultPrice: settings.DefaultVideoCost}
		decision := services.CanAccess(&u, item)
		view := VideoItemView{
			Index:  i,
			Title:  vid.Title,
			Price:  item.EffectivePrice(),
			Access: decision,
		}
		if decision.Verdict == services.AccessFree {
			view.URL = vid.URL
		}
		resp.Videos = append(resp.Videos, view)
	}

	resp.McqCount = len(rec.ManualMCQData)
	if resp.McqCount > 0 {
		decision := services.CanAccess(&u, services.PricedItem{DefaultPrice: settings.McqTestCost})
		resp.McqTestAccess = &decision
		// Admins read the bank back for editing; subscribers take the
		// test without paying. Everyone else goes through unlock.
		if decision.Verdict == services.AccessFree {
			resp.McqQuestions = rec.ManualMCQData
		}
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Content retrieved", resp))
}

// Unlock godoc
// @Summary Unlock a priced item
// @Description Evaluates access for one item and, when payable, debits the caller's credits. With auto-deduct off the first call returns a confirmation prompt; retry with confirm=true to commit. The debit is final even if the client never opens the returned URL.
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body UnlockInput true "Unlock Input"
// @Success 200 {object} utils.Response{data=UnlockResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 402 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /content/unlock [post]
func Unlock(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var input UnlockInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	settings := services.GetSettings(c.Request.Context())
	rec := services.GetChapterContent(c.Request.Context(), input.Ref())
	if rec == nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Coming Soon! This content is being prepared."))
		return
	}

	item, url, reason, err := resolveItem(rec, input, settings)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
		return
	}

	decision := services.CanAccess(&u, item)
	switch decision.Verdict {
	case services.AccessFree:
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Unlocked", UnlockResponse{
			Unlocked:  true,
			URL:       url,
			Questions: unlockQuestions(rec, input.ItemType),
			Credits:   u.Credits,
		}))
		return

	case services.AccessBlocked:
		msg := fmt.Sprintf("Insufficient Credits! You need %d coins.", decision.Price)
		c.JSON(http.StatusPaymentRequired, utils.NewErrorResponse(http.StatusPaymentRequired, msg))
		return
	}

	// PAY: with auto-deduct off the caller must confirm before we debit.
	if !u.IsAutoDeductEnabled && !input.Confirm {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Confirmation required", UnlockResponse{
			ConfirmationRequired: true,
			Price:                decision.Price,
			Credits:              u.Credits,
		}))
		return
	}

	updated, err := services.DebitCredits(u.ID, decision.Price, services.DebitOptions{
		Reason:     reason,
		EnableAuto: input.EnableAutoDeduct,
		IPAddress:  c.ClientIP(),
		DeviceInfo: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCredits) {
			msg := fmt.Sprintf("Insufficient Credits! You need %d coins.", decision.Price)
			c.JSON(http.StatusPaymentRequired, utils.NewErrorResponse(http.StatusPaymentRequired, msg))
			return
		}
		c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, "Purchase failed, please try again"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Unlocked", UnlockResponse{
		Unlocked:  true,
		URL:       url,
		Questions: unlockQuestions(rec, input.ItemType),
		Price:     decision.Price,
		Credits:   updated.Credits,
	}))
}

// unlockQuestions is the deliverable for an MCQ test unlock; other item
// types deliver a URL instead.
func unlockQuestions(rec *models.ContentRecord, itemType string) []models.MCQItem {
	if itemType != ItemTypeMcqTest {
		return nil
	}
	return rec.ManualMCQData
}

// resolveItem maps an unlock request onto a priced item, its deliverable
// URL and the ledger reason line.
func resolveItem(rec *models.ContentRecord, input UnlockInput, settings models.SystemSettings) (services.PricedItem, string, string, error) {
	switch input.ItemType {
	case ItemTypePdf:
		if rec.PremiumLink == "" {
			if rec.FreeLink != "" {
				return services.PricedItem{FreeOnly: true}, rec.FreeLink, "", nil
			}
			return services.PricedItem{}, "", "", errors.New("no notes uploaded for this chapter")
		}
		item := services.PricedItem{Price: rec.Price, DefaultPrice: settings.DefaultPdfCost}
		reason := fmt.Sprintf("Premium notes: %s/%s", input.Subject, input.ChapterID)
		return item, rec.PremiumLink, reason, nil

	case ItemTypeVideo:
		if input.VideoIndex == nil || *input.VideoIndex < 0 || *input.VideoIndex >= len(rec.VideoPlaylist) {
			return services.PricedItem{}, "", "", errors.New("video not found")
		}
		vid := rec.VideoPlaylist[*input.VideoIndex]
		if vid.URL == "" {
			return services.PricedItem{}, "", "", errors.New("video not found")
		}
		item := services.PricedItem{Price: vid.Price, DefaultPrice: settings.DefaultVideoCost}
		reason := fmt.Sprintf("Video: %s", vid.Title)
		return item, vid.URL, reason, nil

	case ItemTypeMcqTest:
		if len(rec.ManualMCQData) == 0 {
			return services.PricedItem{}, "", "", errors.New("no questions uploaded for this chapter")
		}
		item := services.PricedItem{DefaultPrice: settings.McqTestCost}
		reason := fmt.Sprintf("MCQ test: %s/%s", input.Subject, input.ChapterID)
		return item, "", reason, nil
	}

	return services.PricedItem{}, "", "", errors.New("unknown item type")
}

func currentUser(c *gin.Context) (models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	return user.(models.User), true
}
