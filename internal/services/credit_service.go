package services

import (
	"errors"
	"time"

	"github.com/f57725199-cmyk/stuadm/config"
	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/pkg/logger"

	"go.uber.org/zap"
)

var ErrInsufficientCredits = errors.New("insufficient credits")
var ErrInvalidAmount = errors.New("amount must be positive")

type DebitOptions struct {
	Reason     string
	EnableAuto bool
	IPAddress  string
	DeviceInfo string
}

// DebitCredits spends credits to unlock a priced item. The balance is
// re-checked here, against the durable store, not against whatever the
// caller evaluated earlier; the optimistic version guard in UpdateUser
// closes the window between check and write. The debit is not transactional
// with the unlock that follows it: once this returns nil, the credits are
// spent.
func DebitCredits(userID uint, price int, opts DebitOptions) (*models.User, error) {
	if price <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.Credits < price {
		return nil, ErrInsufficientCredits
	}

	updates := map[string]interface{}{
		"credits": user.Credits - price,
	}
	if opts.EnableAuto {
		updates["is_auto_deduct_enabled"] = true
	}

	updated, err := UpdateUser(user.ID, updates, user.Email)
	if err != nil {
		return nil, err
	}

	recordTransaction(updated, -price, user.Credits, opts.Reason, user.Email, user.ID,
		models.TransactionTypeUserDebit, opts.IPAddress, opts.DeviceInfo)

	return updated, nil
}

// AdjustCredits applies an admin grant or deduction. Deductions may not
// push the balance below zero.
func AdjustCredits(userID uint, delta int, reason, operator string, operatorID uint) (*models.User, error) {
	if delta == 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	newBalance := user.Credits + delta
	if newBalance < 0 {
		return nil, ErrInsufficientCredits
	}

	updated, err := UpdateUser(user.ID, map[string]interface{}{"credits": newBalance}, operator)
	if err != nil {
		return nil, err
	}

	txType := models.TransactionTypeAdminAdjust
	if delta > 0 && reason == "" {
		reason = "Admin credit grant"
	}
	recordTransaction(updated, delta, user.Credits, reason, operator, operatorID, txType, "", "")

	return updated, nil
}

// RefundCredits returns spent credits to a user, recorded as a refund entry
// in the ledger.
func RefundCredits(userID uint, amount int, reason, operator string, operatorID uint) (*models.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updated, err := UpdateUser(user.ID, map[string]interface{}{"credits": user.Credits + amount}, operator)
	if err != nil {
		return nil, err
	}

	recordTransaction(updated, amount, user.Credits, reason, operator, operatorID,
		models.TransactionTypeUserRefund, "", "")

	return updated, nil
}

func recordTransaction(user *models.User, amount, balanceBefore int, reason, operator string,
	operatorID uint, txType models.TransactionType, ipAddress, deviceInfo string) {

	trans := models.Transaction{
		CreatedAt:     time.Now(),
		UserID:        user.ID,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  user.Credits,
		Reason:        reason,
		Operator:      operator,
		OperatorID:    operatorID,
		Type:          txType,
		IPAddress:     ipAddress,
		DeviceInfo:    deviceInfo,
	}

	if cfg, err := config.LoadConfig(); err == nil {
		trans.Hash = trans.GenerateHash(cfg.LedgerSecret)
	}

	if err := database.DB.Create(&trans).Error; err != nil {
		// The balance mutation already committed; a lost ledger row is
		// logged loudly rather than unwound.
		logger.Log.Error("ledger write failed",
			zap.Uint("user_id", user.ID), zap.Int("amount", amount), zap.Error(err))
	}
}
