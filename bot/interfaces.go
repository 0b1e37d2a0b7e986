package bot

import (
	"context"

	"vxvideo-bot/internal/handlers"
	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/mymmrac/telego"
)

// HandlerProvider is the subset of handlers.MessageHandler the update loop depends on.
type HandlerProvider interface {
	GetCommand(command string) *handlers.Command
	HandleText(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) error
	CheckAccess(ctx context.Context, bot telegoapi.BotAPI, message telego.Message) (bool, error)
	IsAdmin(ctx context.Context, message telego.Message) bool
	SetupCommands(ctx context.Context, bot telegoapi.BotAPI, operatorChatID int64) error
}

// Reporter delivers errors raised while processing an update.
type Reporter interface {
	Report(ctx context.Context, update telego.Update, err error)
	ReportPanic(ctx context.Context, update telego.Update, recovered interface{}, stack []byte)
}
