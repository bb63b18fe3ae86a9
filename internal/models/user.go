package models

import (
	"encoding/json"
	"time"
)

const (
	RoleAdmin   = "ADMIN"
	RoleLearner = "LEARNER"
)

const (
	TierNone    = "NONE"
	TierPremium = "PREMIUM"
	TierUltra   = "ULTRA"
)

// SubjectProgress tracks how far a learner has moved through one subject's
// syllabus. CurrentChapterIndex is the highest chapter the learner may open.
type SubjectProgress struct {
	CurrentChapterIndex int `json:"currentChapterIndex"`
	TotalMCQsSolved     int `json:"totalMCQsSolved"`
}

type User struct {
	ID                  uint `gorm:"primarykey"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	Name                string     `gorm:"not null" json:"name"`
	Role                string     `gorm:"not null;default:'LEARNER'" json:"role"`
	Board               string     `gorm:"type:varchar(20)" json:"board"`
	ClassLevel          string     `gorm:"type:varchar(10)" json:"classLevel"`
	Stream              string     `gorm:"type:varchar(20)" json:"stream"`
	Credits             int        `gorm:"not null;default:0" json:"credits"`
	IsPremium           bool       `gorm:"default:false" json:"isPremium"`
	SubscriptionLevel   string     `gorm:"type:varchar(20);default:'NONE'" json:"subscriptionLevel"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate,omitempty"`
	IsAutoDeductEnabled bool       `gorm:"default:false" json:"isAutoDeductEnabled"`
	LastActiveTime      *time.Time `json:"lastActiveTime,omitempty"`
	Progress            JSON       `json:"progress"`
	Version             int        `gorm:"default:1" json:"-"`
}

// IsSubscribed reports whether the user holds an unexpired subscription.
func (u *User) IsSubscribed(now time.Time) bool {
	return u.IsPremium && u.SubscriptionEndDate != nil && u.SubscriptionEndDate.After(now)
}

// ProgressFor returns the learner's progress in the given subject,
// zero-valued when the subject has never been started.
func (u *User) ProgressFor(subjectID string) SubjectProgress {
	var p SubjectProgress
	raw, ok := u.Progress[subjectID]
	if !ok {
		return p
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return p
	}
	json.Unmarshal(data, &p)
	return p
}

// SetProgress stores the learner's progress for the given subject.
func (u *User) SetProgress(subjectID string, p SubjectProgress) {
	if u.Progress == nil {
		u.Progress = make(JSON)
	}
	u.Progress[subjectID] = map[string]interface{}{
		"currentChapterIndex": p.CurrentChapterIndex,
		"totalMCQsSolved":     p.TotalMCQsSolved,
	}
}
