package bot

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	telegoapi "vxvideo-bot/pkg/telegoapi"

	"github.com/getsentry/sentry-go"
	"github.com/mymmrac/telego"
	"go.uber.org/ratelimit"
)

const (
	defaultRateLimit  = 20
	processingTimeout = 30 * time.Second
)

// Bot represents the main application logic for the Telegram bot.
// It consumes the update channel, applies access rules and routes messages to the handler.
type Bot struct {
	bot            telegoapi.BotAPI
	updatesChan    <-chan telego.Update
	handler        HandlerProvider
	reporter       Reporter
	ratelimiter    ratelimit.Limiter
	operatorChatID int64
	debug          bool
}

// BotDeps holds the dependencies required by the Bot.
type BotDeps struct {
	Bot            telegoapi.BotAPI
	UpdatesChan    <-chan telego.Update
	Handler        HandlerProvider
	Reporter       Reporter // Defaults to an ErrorReporter targeting OperatorChatID.
	OperatorChatID int64
	RateLimit      int // Updates per second; defaults to 20.
	Debug          bool
}

// New creates a new Bot instance from its dependencies.
// Returns the new Bot instance or an error if dependencies are missing.
func New(deps BotDeps) (*Bot, error) {
	if deps.Bot == nil {
		return nil, fmt.Errorf("telego bot (BotAPI) instance cannot be nil")
	}
	if deps.UpdatesChan == nil {
		return nil, fmt.Errorf("updates channel cannot be nil")
	}
	if deps.Handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}
	if deps.OperatorChatID == 0 {
		return nil, fmt.Errorf("operator chat id cannot be zero")
	}

	reporter := deps.Reporter
	if reporter == nil {
		reporter = NewErrorReporter(deps.Bot, deps.OperatorChatID)
	}
	rate := deps.RateLimit
	if rate <= 0 {
		rate = defaultRateLimit
	}

	return &Bot{
		bot:            deps.Bot,
		updatesChan:    deps.UpdatesChan,
		handler:        deps.Handler,
		reporter:       reporter,
		ratelimiter:    ratelimit.New(rate),
		operatorChatID: deps.OperatorChatID,
		debug:          deps.Debug,
	}, nil
}

// commandName extracts the command from a message like "/stats@MyBot arg", returning "stats".
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name)
}

// handleCommandUpdate processes a message identified as a command.
// Unknown commands and admin commands from other chats are ignored.
func (b *Bot) handleCommandUpdate(ctx context.Context, update telego.Update, message telego.Message) {
	command := commandName(message.Text)
	logPrefix := fmt.Sprintf("[Cmd:%s Chat:%d]", command, message.Chat.ID)

	cmd := b.handler.GetCommand(command)
	if cmd == nil {
		if b.debug {
			log.Printf("%s No handler found, ignoring", logPrefix)
		}
		return
	}
	if cmd.AdminOnly && !b.handler.IsAdmin(ctx, message) {
		log.Printf("%s Ignoring admin command from non-operator chat", logPrefix)
		return
	}

	if b.debug {
		log.Printf("%s Executing handler", logPrefix)
	}
	if err := cmd.Handler(ctx, b.bot, message); err != nil {
		log.Printf("%s Handler error: %v", logPrefix, err)
		b.reporter.Report(ctx, update, fmt.Errorf("%s handler error: %w", logPrefix, err))
		return
	}
	if b.debug {
		log.Printf("%s Handler finished successfully", logPrefix)
	}
}

// handleTextUpdate processes an incoming text message.
func (b *Bot) handleTextUpdate(ctx context.Context, update telego.Update, message telego.Message) {
	logPrefix := fmt.Sprintf("[Text Chat:%d Msg:%d]", message.Chat.ID, message.MessageID)
	if b.debug {
		log.Printf("%s Processing text message", logPrefix)
	}
	if err := b.handler.HandleText(ctx, b.bot, message); err != nil {
		log.Printf("%s Text handler error: %v", logPrefix, err)
		b.reporter.Report(ctx, update, err)
	}
}

// processUpdate routes incoming updates to the appropriate handlers.
func (b *Bot) processUpdate(ctx context.Context, update telego.Update) {
	b.ratelimiter.Take()

	defer func() {
		if r := recover(); r != nil {
			b.reporter.ReportPanic(ctx, update, r, debug.Stack())
		}
	}()

	processingCtx, cancel := context.WithTimeout(ctx, processingTimeout)
	defer cancel()

	if update.Message == nil {
		if b.debug {
			log.Printf("Ignoring unhandled update type (ID: %d)", update.UpdateID)
		}
		return
	}
	message := *update.Message
	if message.From == nil {
		log.Printf("Ignoring message %d from chat %d without sender", message.MessageID, message.Chat.ID)
		return
	}

	allowed, err := b.handler.CheckAccess(processingCtx, b.bot, message)
	if err != nil {
		b.reporter.Report(processingCtx, update, err)
		return
	}
	if !allowed {
		return
	}

	switch {
	case strings.HasPrefix(message.Text, "/"):
		b.handleCommandUpdate(processingCtx, update, message)
	case message.Text != "":
		b.handleTextUpdate(processingCtx, update, message)
	default:
		if b.debug {
			log.Printf("Ignoring non-text message (ID: %d)", message.MessageID)
		}
	}
}

// setupCommands registers the command menu, logging failures without stopping the bot.
func (b *Bot) setupCommands(ctx context.Context) {
	if err := b.handler.SetupCommands(ctx, b.bot, b.operatorChatID); err != nil {
		log.Printf("Failed to set up bot commands: %v", err)
		sentry.CaptureException(err)
	}
}

// Start registers the command menu and begins the update processing loop.
// Each update is processed in its own goroutine; Start returns once ctx is done
// or the updates channel closes, after in-flight updates finish.
func (b *Bot) Start(ctx context.Context) {
	b.setupCommands(ctx)
	log.Println("Listening for updates...")

	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			log.Println("Context done, stopping update processing...")
			wg.Wait()
			log.Println("All update processing finished.")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				log.Println("Updates channel closed.")
				wg.Wait()
				return
			}
			wg.Add(1)
			go func(up telego.Update) {
				defer wg.Done()
				b.processUpdate(ctx, up)
			}(update)
		}
	}
}

// Stop gracefully stops the bot.
// The actual stop is triggered by context cancellation; this only flushes pending Sentry events.
func (b *Bot) Stop() {
	log.Println("Bot Stop method called, flushing error reports.")
	sentry.Flush(2 * time.Second)
}
