package handlers

import (
	"context"

	"vxvideo-bot/internal/auth"
	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/mymmrac/telego"
)

// CommandHandler is the signature shared by all command handlers.
type CommandHandler func(context.Context, telegoapi.BotAPI, telego.Message) error

// Command represents a bot command, mapping the command string to its description and handler function.
type Command struct {
	Command     string         // The command string (e.g., "start").
	Description string         // Locale key of the description shown in the command menu.
	Handler     CommandHandler // The function to execute when the command is received.
	AdminOnly   bool           // Restricts the command to the operator chat.
}

// MessageHandler handles incoming Telegram messages.
// It owns the command table, renders pipeline reply actions and gates access in private mode.
type MessageHandler struct {
	pipeline     PipelineInterface
	stats        StatsInterface
	adminChecker auth.AdminCheckerInterface
	isPrivate    bool

	commands []Command
}

// NewMessageHandler creates and initializes a new MessageHandler instance.
func NewMessageHandler(
	pipeline PipelineInterface,
	stats StatsInterface,
	adminChecker auth.AdminCheckerInterface,
	isPrivate bool,
) *MessageHandler {
	h := &MessageHandler{
		pipeline:     pipeline,
		stats:        stats,
		adminChecker: adminChecker,
		isPrivate:    isPrivate,
	}
	h.commands = []Command{
		{Command: "start", Description: "CmdStartDescription", Handler: h.HandleStart},
		{Command: "help", Description: "CmdHelpDescription", Handler: h.HandleHelp},
		{Command: "stats", Description: "CmdStatsDescription", Handler: h.HandleStats, AdminOnly: true},
		{Command: "resetstats", Description: "CmdResetStatsDescription", Handler: h.HandleResetStats, AdminOnly: true},
	}
	return h
}

// GetCommand returns the command registered under the given name, or nil.
func (h *MessageHandler) GetCommand(command string) *Command {
	for i := range h.commands {
		if h.commands[i].Command == command {
			return &h.commands[i]
		}
	}
	return nil
}

// IsPrivate reports whether the bot only serves the operator chat.
func (h *MessageHandler) IsPrivate() bool {
	return h.isPrivate
}
