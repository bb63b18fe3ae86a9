package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypeAdminAdjust TransactionType = "admin_adjustment"
	TransactionTypeSignupBonus TransactionType = "signup_bonus"
	TransactionTypeUserDebit   TransactionType = "user_debit"
	TransactionTypeUserRefund  TransactionType = "user_refund"
)

// Transaction is one credit-ledger entry. Amount is negative for debits and
// positive for grants; balances are recorded on both sides of the mutation.
type Transaction struct {
	ID            uint            `gorm:"primarykey"`
	CreatedAt     time.Time       `gorm:"precision:3"` // Millisecond precision
	UserID        uint            `gorm:"index;not null"`
	Amount        int             `gorm:"not null"`
	BalanceBefore int             `gorm:"not null"`
	BalanceAfter  int             `gorm:"not null"`
	Reason        string          `gorm:"type:text"`
	Operator      string          `gorm:"type:varchar(100)"` // Email or 'system'
	OperatorID    uint            `gorm:"index;default:0"`   // 0 for system, otherwise UserID
	Type          TransactionType `gorm:"type:varchar(50);index;default:'user_debit'"`
	IPAddress     string          `gorm:"type:varchar(50)"`
	DeviceInfo    string          `gorm:"type:varchar(255)"`
	Hash          string          `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the transaction
func (t *Transaction) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%d|%d|%d|%s|%s|%s|%d",
		t.UserID, t.CreatedAt.UnixNano(), t.Amount, t.BalanceBefore, t.BalanceAfter,
		t.Reason, t.Operator, t.Type, t.OperatorID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
