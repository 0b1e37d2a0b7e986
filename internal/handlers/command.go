package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vxvideo-bot/internal/locales"
	telegoapi "vxvideo-bot/pkg/telegoapi"
	"vxvideo-bot/pkg/utils"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// HandleStart greets the user with a MarkdownV2 mention.
func (h *MessageHandler) HandleStart(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	localizer := h.getLocalizer(message.From)

	var mention string
	if message.From != nil {
		mention = utils.MentionMarkdownV2(message.From.ID, fullName(message.From))
	}
	text := locales.GetMessage(localizer, "MsgStart", map[string]interface{}{"Mention": mention}, nil)

	params := replyTo(message, text).WithParseMode(telego.ModeMarkdownV2)
	_, err := sendMessageWithRetry(ctx, bot, params)
	return err
}

// HandleHelp sends the usage hint.
func (h *MessageHandler) HandleHelp(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	localizer := h.getLocalizer(message.From)
	_, err := sendMessageWithRetry(ctx, bot, replyTo(message, locales.GetMessage(localizer, "MsgHelp", nil, nil)))
	return err
}

// HandleStats reports the current counter values.
func (h *MessageHandler) HandleStats(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	localizer := h.getLocalizer(message.From)
	snapshot := h.stats.Snapshot()

	text := locales.GetMessage(localizer, "MsgStats", map[string]interface{}{
		"MessagesHandled": snapshot.MessagesHandled,
		"MediaDownloaded": snapshot.MediaDownloaded,
	}, nil)

	params := replyTo(message, text).WithParseMode(telego.ModeMarkdownV2)
	_, err := sendMessageWithRetry(ctx, bot, params)
	return err
}

// HandleResetStats sets both counters to zero.
func (h *MessageHandler) HandleResetStats(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error {
	if err := h.stats.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	log.Printf("[Cmd:resetstats Chat:%d] Stats reset", message.Chat.ID)

	localizer := h.getLocalizer(message.From)
	_, err := sendMessageWithRetry(ctx, bot, replyTo(message, locales.GetMessage(localizer, "MsgStatsReset", nil, nil)))
	return err
}

// SetupCommands registers the command menu with Telegram.
// In private mode every command is shown to the operator chat only; in public mode the default
// menu is empty and the admin commands are scoped to the operator chat.
func (h *MessageHandler) SetupCommands(ctx context.Context, bot telegoapi.BotAPI, operatorChatID int64) error {
	localizer := locales.NewLocalizer(locales.DefaultLanguage)
	operatorScope := &telego.BotCommandScopeChat{
		Type:   telego.ScopeTypeChat,
		ChatID: tu.ID(operatorChatID),
	}

	var operatorCommands []telego.BotCommand
	for _, cmd := range h.commands {
		if !h.isPrivate && !cmd.AdminOnly {
			continue
		}
		operatorCommands = append(operatorCommands, telego.BotCommand{
			Command:     cmd.Command,
			Description: locales.GetMessage(localizer, cmd.Description, nil, nil),
		})
	}

	if !h.isPrivate {
		if err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{Commands: []telego.BotCommand{}}); err != nil {
			return fmt.Errorf("failed to set default bot commands: %w", err)
		}
	}
	if err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: operatorCommands,
		Scope:    operatorScope,
	}); err != nil {
		return fmt.Errorf("failed to set operator bot commands: %w", err)
	}

	log.Printf("Successfully set %d operator bot commands (private mode: %t).", len(operatorCommands), h.isPrivate)
	return nil
}

func fullName(user *telego.User) string {
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
