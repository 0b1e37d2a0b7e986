package handlers

import (
	"context"

	"vxvideo-bot/internal/database/models"
	"vxvideo-bot/internal/tweets"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

// MockBot is a mock implementing the telegoapi.BotAPI interface
type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*telego.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBot) SendDocument(ctx context.Context, params *telego.SendDocumentParams) (*telego.Message, error) {
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*telego.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBot) SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBot) GetMe(ctx context.Context) (*telego.User, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*telego.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPipeline is a mock implementing PipelineInterface
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Stream(ctx context.Context, text string, emit func(tweets.ReplyAction)) {
	args := m.Called(ctx, text)
	if actions, ok := args.Get(0).([]tweets.ReplyAction); ok {
		for _, action := range actions {
			emit(action)
		}
	}
}

// MockStats is a mock implementing StatsInterface
type MockStats struct {
	mock.Mock
}

func (m *MockStats) Snapshot() models.BotStats {
	args := m.Called()
	return args.Get(0).(models.BotStats)
}

func (m *MockStats) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAdminChecker is a mock implementing auth.AdminCheckerInterface
type MockAdminChecker struct {
	mock.Mock
}

func (m *MockAdminChecker) IsAdmin(ctx context.Context, chatID int64) (bool, error) {
	args := m.Called(ctx, chatID)
	return args.Bool(0), args.Error(1)
}
