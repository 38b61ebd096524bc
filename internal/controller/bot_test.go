package controller

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/controller/telegramtest"
	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/repository"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptyPortal struct{}

func (emptyPortal) FetchScheduleHTML(context.Context, string) (string, error) {
	return "", nil
}

func (emptyPortal) SearchGroups(context.Context, string) ([]model.GroupResult, error) {
	return nil, nil
}

func newController(t *testing.T) (*BotController, *telegramtest.Server, *service.UserService) {
	t.Helper()

	tg := telegramtest.NewServer()
	t.Cleanup(tg.Close)

	logger := zap.NewNop()
	users := service.NewUserService(repository.NewYAMLUserRepository(afero.NewMemMapFs(), "users.yaml"), logger)
	groups, err := service.NewGroupService(emptyPortal{}, logger)
	require.NoError(t, err)
	t.Cleanup(groups.Close)

	c, err := NewBotController("123:TEST", Services{
		Users:    users,
		Groups:   groups,
		Schedule: service.NewScheduleService(emptyPortal{}, time.UTC, logger),
		Weather:  service.NewWeatherService(nil, 0, 0, time.UTC, logger),
	}, logger, bot.WithServerURL(tg.URL), bot.WithSkipGetMe())
	require.NoError(t, err)

	return c, tg, users
}

func callback(from int64, data string) *models.Update {
	return &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: from},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{ID: 77, Chat: models.Chat{ID: from}},
			},
			Data: data,
		},
	}
}

func TestRegisterHandlers_SetsCommands(t *testing.T) {
	c, tg, _ := newController(t)

	require.NoError(t, c.RegisterHandlers(context.Background()))

	call, ok := tg.Last("setMyCommands")
	require.True(t, ok)
	assert.Contains(t, call.Fields["commands"], `"command":"today"`)
	assert.Contains(t, call.Fields["commands"], `"command":"setgroup"`)
}

func TestSelectGroupCallback(t *testing.T) {
	c, tg, users := newController(t)
	ctx := context.Background()

	_, err := users.RegisterUser(ctx, 42, "ivan", "Иван", "")
	require.NoError(t, err)

	c.callbackHandler.HandleCallbackQuery(ctx, c.Bot(), callback(42, "select_group:531:ИКС-432"))

	user, err := users.RequireGroup(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "531", user.GroupID)
	assert.Equal(t, "ИКС-432", user.GroupName)

	edit, ok := tg.Last("editMessageText")
	require.True(t, ok)
	assert.Contains(t, edit.Fields["text"], "ИКС-432")
	assert.Equal(t, "77", edit.Fields["message_id"])

	_, ok = tg.Last("answerCallbackQuery")
	assert.True(t, ok)
}

func TestSelectGroupCallback_UnknownUser(t *testing.T) {
	c, tg, _ := newController(t)

	c.callbackHandler.HandleCallbackQuery(context.Background(), c.Bot(), callback(42, "select_group:531:ИКС-432"))

	answer, ok := tg.Last("answerCallbackQuery")
	require.True(t, ok)
	assert.Contains(t, answer.Fields["text"], "/start")
	_, edited := tg.Last("editMessageText")
	assert.False(t, edited)
}

func TestScheduleViewCallback(t *testing.T) {
	c, tg, users := newController(t)
	ctx := context.Background()

	_, err := users.RegisterUser(ctx, 42, "ivan", "Иван", "")
	require.NoError(t, err)
	require.NoError(t, users.SetGroup(ctx, 42, model.GroupResult{ID: "531", Name: "ИКС-432"}))

	c.callbackHandler.HandleCallbackQuery(ctx, c.Bot(), callback(42, "schedule:week"))

	msg, ok := tg.Last("sendMessage")
	require.True(t, ok)
	assert.Contains(t, msg.Fields["text"], "Расписание не найдено")
}

func TestUnknownCallback(t *testing.T) {
	c, tg, _ := newController(t)

	c.callbackHandler.HandleCallbackQuery(context.Background(), c.Bot(), callback(42, "book_lesson:1"))

	answer, ok := tg.Last("answerCallbackQuery")
	require.True(t, ok)
	assert.Equal(t, "true", answer.Fields["show_alert"])
}
