package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vxvideo-bot/internal/locales"
	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	ta "github.com/mymmrac/telego/telegoapi"
	tu "github.com/mymmrac/telego/telegoutil"
)

const (
	reportFileName = "error_report.txt"
	reportTimeout  = 10 * time.Second
)

// ErrorReporter forwards unexpected errors to Sentry and to the operator chat,
// and tells the affected user that something went wrong.
type ErrorReporter struct {
	bot            telegoapi.BotAPI
	operatorChatID int64
}

// NewErrorReporter creates an ErrorReporter that sends reports to operatorChatID.
func NewErrorReporter(bot telegoapi.BotAPI, operatorChatID int64) *ErrorReporter {
	return &ErrorReporter{bot: bot, operatorChatID: operatorChatID}
}

// Report handles an error returned while processing an update.
// Telegram API errors with code 403 (bot blocked or kicked) or 409 (another poller running) are only logged.
func (r *ErrorReporter) Report(ctx context.Context, update telego.Update, err error) {
	if err == nil {
		return
	}
	if isSuppressed(err) {
		log.Printf("[ErrorReport Update:%d] Suppressed Telegram error: %v", update.UpdateID, err)
		return
	}

	reportID := uuid.NewString()
	log.Printf("[ErrorReport %s Update:%d] Exception while handling an update: %v", reportID, update.UpdateID, err)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("report_id", reportID)
		sentry.CaptureException(err)
	})

	r.notify(ctx, update, reportID, err, nil)
}

// ReportPanic handles a panic recovered while processing an update.
func (r *ErrorReporter) ReportPanic(ctx context.Context, update telego.Update, recovered interface{}, stack []byte) {
	reportID := uuid.NewString()
	log.Printf("[ErrorReport %s Update:%d] PANIC recovered: %v\n%s", reportID, update.UpdateID, recovered, stack)

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetTag("report_id", reportID)
	hub.Recover(recovered)
	hub.Flush(2 * time.Second)

	r.notify(ctx, update, reportID, fmt.Errorf("panic: %v", recovered), stack)
}

func (r *ErrorReporter) notify(ctx context.Context, update telego.Update, reportID string, err error, stack []byte) {
	// The processing context may already be expired by the time a report is sent.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	defer cancel()

	localizer := locales.NewLocalizer(locales.DefaultLanguage)

	document := buildReport(update, reportID, err, stack)
	_, sendErr := r.bot.SendDocument(ctx, &telego.SendDocumentParams{
		ChatID:   tu.ID(r.operatorChatID),
		Document: tu.File(tu.NameReader(strings.NewReader(document), reportFileName)),
		Caption:  locales.GetMessage(localizer, "MsgErrorReportCaption", nil, nil),
	})
	if sendErr != nil {
		log.Printf("[ErrorReport %s] Failed to send report to operator chat %d: %v", reportID, r.operatorChatID, sendErr)
	}

	if update.Message == nil {
		return
	}
	message := update.Message
	text := locales.GetMessage(localizer, "MsgErrorGeneric", map[string]interface{}{
		"ErrorType": errorType(err),
		"Error":     err.Error(),
	}, nil)
	params := tu.Message(tu.ID(message.Chat.ID), text)
	params.ReplyParameters = &telego.ReplyParameters{MessageID: message.MessageID, AllowSendingWithoutReply: true}
	if _, sendErr := r.bot.SendMessage(ctx, params); sendErr != nil {
		log.Printf("[ErrorReport %s] Failed to notify chat %d: %v", reportID, message.Chat.ID, sendErr)
	}
}

// buildReport renders the operator-facing report document.
func buildReport(update telego.Update, reportID string, err error, stack []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "report_id = %s\n", reportID)
	fmt.Fprintf(&b, "time = %s\n\n", time.Now().UTC().Format(time.RFC3339))

	updateJSON, jsonErr := json.MarshalIndent(update, "", "  ")
	if jsonErr != nil {
		fmt.Fprintf(&b, "update = <unserializable: %v>\n\n", jsonErr)
	} else {
		fmt.Fprintf(&b, "update = %s\n\n", updateJSON)
	}

	fmt.Fprintf(&b, "error = %s\n", err)
	for e := err; e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(&b, "  %T: %v\n", e, e)
	}
	if len(stack) > 0 {
		fmt.Fprintf(&b, "\n%s", stack)
	}
	return b.String()
}

// errorType names the innermost error in the wrap chain.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}

// isSuppressed reports whether err wraps a Telegram API error with code 403 or 409.
func isSuppressed(err error) bool {
	var apiErr *ta.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode == 403 || apiErr.ErrorCode == 409
}
