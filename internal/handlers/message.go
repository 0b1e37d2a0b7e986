package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vxvideo-bot/internal/locales"
	"vxvideo-bot/internal/tweets"
	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/mymmrac/telego"
)

// HandleText runs the message text through the tweet pipeline and replies with every resulting action in order.
// Each reply is sent as soon as its tweet is done, on a context detached from the processing deadline.
// A failed reply does not stop the remaining ones; all send failures are returned joined.
func (h *MessageHandler) HandleText(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	localizer := h.getLocalizer(message.From)

	var errs []error
	h.pipeline.Stream(ctx, message.Text, func(action tweets.ReplyAction) {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
		defer cancel()

		text := locales.GetMessage(localizer, action.MessageID, action.Data, nil)
		if _, err := sendMessageWithRetry(sendCtx, bot, replyTo(message, text)); err != nil {
			log.Printf("[HandleText Chat:%d] Failed to send %s reply: %v", message.Chat.ID, action.MessageID, err)
			errs = append(errs, fmt.Errorf("send %s: %w", action.MessageID, err))
		}
	})
	return errors.Join(errs...)
}

// CheckAccess reports whether the message may be processed.
// In private mode, messages from any chat other than the operator chat are answered with an access-denied notice.
func (h *MessageHandler) CheckAccess(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) (bool, error) {
	if !h.isPrivate {
		return true, nil
	}
	isAdmin, err := h.adminChecker.IsAdmin(ctx, message.Chat.ID)
	if err != nil {
		return false, fmt.Errorf("admin check failed for chat %d: %w", message.Chat.ID, err)
	}
	if isAdmin {
		return true, nil
	}
	return false, h.DenyAccess(ctx, bot, message)
}

// DenyAccess tells the sender their id is not whitelisted.
func (h *MessageHandler) DenyAccess(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	var userID int64
	if message.From != nil {
		userID = message.From.ID
	}
	log.Printf("[DenyAccess Chat:%d User:%d] Access denied in private mode", message.Chat.ID, userID)

	localizer := h.getLocalizer(message.From)
	text := locales.GetMessage(localizer, "MsgAccessDenied", map[string]interface{}{"UserID": userID}, nil)
	_, err := sendMessageWithRetry(ctx, bot, replyTo(message, text))
	return err
}

// IsAdmin reports whether the message comes from the operator chat.
func (h *MessageHandler) IsAdmin(ctx context.Context, message telego.Message) bool {
	isAdmin, err := h.adminChecker.IsAdmin(ctx, message.Chat.ID)
	if err != nil {
		log.Printf("[IsAdmin Chat:%d] Admin check failed, assuming non-admin: %v", message.Chat.ID, err)
		return false
	}
	return isAdmin
}
