package auth

import (
	"context"
	"fmt"
)

// AdminCheckerInterface decides whether a chat belongs to the bot operator.
type AdminCheckerInterface interface {
	IsAdmin(ctx context.Context, chatID int64) (bool, error)
}

// AdminChecker grants admin rights to the single configured operator chat.
type AdminChecker struct {
	operatorChatID int64
}

// NewAdminChecker creates a new AdminChecker.
// It requires a non-zero operator chat ID.
func NewAdminChecker(operatorChatID int64) (*AdminChecker, error) {
	if operatorChatID == 0 {
		return nil, fmt.Errorf("operator chat ID cannot be zero")
	}
	return &AdminChecker{operatorChatID: operatorChatID}, nil
}

// IsAdmin reports whether chatID is the operator chat.
func (ac *AdminChecker) IsAdmin(_ context.Context, chatID int64) (bool, error) {
	return chatID == ac.operatorChatID, nil
}

// OperatorChatID returns the chat that receives error reports.
func (ac *AdminChecker) OperatorChatID() int64 {
	return ac.operatorChatID
}
