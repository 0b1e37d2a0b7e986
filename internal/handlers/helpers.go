package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vxvideo-bot/internal/locales"
	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/mymmrac/telego"
	ta "github.com/mymmrac/telego/telegoapi"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	maxSendRetries = 3
	replyTimeout   = 15 * time.Second
)

// defaultRetryWait is used when a 429 response carries no retry_after hint.
var defaultRetryWait = 2 * time.Second

// getLocalizer picks a localizer from the sender's language, falling back to the default language.
func (h *MessageHandler) getLocalizer(user *telego.User) *i18n.Localizer {
	if user != nil && user.LanguageCode != "" {
		return locales.NewLocalizer(user.LanguageCode, locales.DefaultLanguage)
	}
	return locales.NewLocalizer(locales.DefaultLanguage)
}

// replyTo builds a plain-text reply to the given message.
func replyTo(message telego.Message, text string) *telego.SendMessageParams {
	return &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: message.Chat.ID},
		Text:   text,
		ReplyParameters: &telego.ReplyParameters{
			MessageID:                message.MessageID,
			AllowSendingWithoutReply: true,
		},
	}
}

// sendMessageWithRetry sends a message, waiting out Telegram flood limits up to maxSendRetries times.
func sendMessageWithRetry(ctx context.Context, bot telegoapi.BotAPI, params *telego.SendMessageParams) (*telego.Message, error) {
	var lastErr error
	logPrefix := fmt.Sprintf("[SendRetry Chat:%d]", params.ChatID.ID)

	for attempt := 0; attempt < maxSendRetries; attempt++ {
		sent, err := bot.SendMessage(ctx, params)
		if err == nil {
			if attempt > 0 {
				log.Printf("%s Successfully sent after %d attempt(s)", logPrefix, attempt+1)
			}
			return sent, nil
		}
		lastErr = err

		wait, limited := retryAfter(err)
		if !limited {
			return nil, err
		}
		log.Printf("%s Rate limit hit (attempt %d/%d), waiting %v", logPrefix, attempt+1, maxSendRetries, wait)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s context cancelled during rate limit wait: %w", logPrefix, ctx.Err())
		case <-time.After(wait):
		}
	}
	return nil, fmt.Errorf("%s max retries (%d) exceeded: %w", logPrefix, maxSendRetries, lastErr)
}

// retryAfter reports whether err is a flood-limit error and how long to wait before retrying.
func retryAfter(err error) (time.Duration, bool) {
	var apiErr *ta.Error
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode != 429 {
			return 0, false
		}
		if apiErr.Parameters != nil && apiErr.Parameters.RetryAfter > 0 {
			return time.Duration(apiErr.Parameters.RetryAfter) * time.Second, true
		}
		return defaultRetryWait, true
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Too Many Requests") && !strings.Contains(errStr, "429") {
		return 0, false
	}
	if seconds, ok := parseRetryAfter(errStr); ok {
		return time.Duration(seconds) * time.Second, true
	}
	return defaultRetryWait, true
}

// parseRetryAfter extracts the retry duration from an error string ending in "retry after N".
func parseRetryAfter(errorString string) (int, bool) {
	var seconds int
	fields := strings.Fields(errorString)
	if len(fields) >= 3 && fields[len(fields)-2] == "after" {
		if _, err := fmt.Sscan(fields[len(fields)-1], &seconds); err == nil && seconds > 0 {
			return seconds, true
		}
	}
	return 0, false
}
