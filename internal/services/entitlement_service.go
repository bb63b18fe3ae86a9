package services

import (
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/models"
)

type AccessVerdict string

const (
	AccessFree    AccessVerdict = "FREE"
	AccessPay     AccessVerdict = "PAY"
	AccessBlocked AccessVerdict = "BLOCKED"
)

// AccessDecision is the outcome of evaluating one priced item for one user.
// Price carries the amount to charge for PAY and the amount missing context
// for BLOCKED.
type AccessDecision struct {
	Verdict AccessVerdict `json:"verdict"`
	Price   int           `json:"price"`
}

// PricedItem is one unlockable piece of content: a premium PDF, a playlist
// video or a paid MCQ test. Price nil means the item falls back to
// DefaultPrice.
type PricedItem struct {
	Price        *int
	DefaultPrice int
	FreeOnly     bool
}

// EffectivePrice resolves the item's price against its fallback.
func (i PricedItem) EffectivePrice() int {
	if i.Price != nil {
		return *i.Price
	}
	return i.DefaultPrice
}

// CanAccess decides whether the user may view the item. First match wins:
// admins bypass everything; zero-priced or free-only items are open; an
// unexpired ULTRA subscription unlocks all priced content (PREMIUM does
// not); otherwise the user pays if the balance covers the price and is
// blocked if it does not.
func CanAccess(user *models.User, item PricedItem) AccessDecision {
	if user.Role == models.RoleAdmin {
		return AccessDecision{Verdict: AccessFree}
	}

	price := item.EffectivePrice()
	if item.FreeOnly || price == 0 {
		return AccessDecision{Verdict: AccessFree}
	}

	if user.IsSubscribed(time.Now()) && user.SubscriptionLevel == models.TierUltra {
		return AccessDecision{Verdict: AccessFree}
	}

	if user.Credits >= price {
		return AccessDecision{Verdict: AccessPay, Price: price}
	}

	return AccessDecision{Verdict: AccessBlocked, Price: price}
}

// ChapterLocked applies the sequential-unlock gate for one syllabus entry.
// The explicit admin lock flag always locks the chapter for non-admins;
// otherwise the chapter at index is open while the restriction toggle is
// off, and gated on the learner's progress while it is on. Admins are never
// locked out. This gate is separate from item-level pricing: payment never
// bypasses a locked chapter.
func ChapterLocked(user *models.User, chapter *models.Chapter, index int, settings models.SystemSettings) bool {
	if user.Role == models.RoleAdmin {
		return false
	}
	if chapter.IsLocked {
		return true
	}
	if !settings.RestrictionEnabled {
		return false
	}
	progress := user.ProgressFor(chapter.Subject)
	return index > progress.CurrentChapterIndex
}
