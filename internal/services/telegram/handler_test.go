package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

type fakeBot struct {
	commands  []string
	texts     []string
	photos    int
	callbacks []string
	err       error
}

func (f *fakeBot) HandleCommand(_ context.Context, _ *domain.TelegramUser, _ *domain.Message, command string) error {
	f.commands = append(f.commands, command)
	return f.err
}

func (f *fakeBot) HandleText(_ context.Context, _ *domain.TelegramUser, _ *domain.Message, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func (f *fakeBot) HandlePhoto(context.Context, *domain.TelegramUser, *domain.Message) error {
	f.photos++
	return f.err
}

func (f *fakeBot) HandleCallback(_ context.Context, _ *domain.TelegramUser, callback *domain.CallbackQuery) error {
	f.callbacks = append(f.callbacks, *callback.Data)
	return f.err
}

func strPtr(s string) *string { return &s }

func privateMessage(text *string, photo ...domain.PhotoSize) *domain.Message {
	return &domain.Message{
		MessageID: 1,
		From:      &domain.TelegramUser{ID: 42, FirstName: "Ann"},
		Chat:      &domain.Chat{ID: 42, Type: "private"},
		Text:      text,
		Photo:     photo,
	}
}

func TestParseCommand(t *testing.T) {
	cases := map[string]string{
		"/start":                 "start",
		"/history@food_bot":      "history",
		"/BMR":                   "bmr",
		"/setprofile please now": "setprofile",
		"/clear@food_bot extra":  "clear",
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseCommand(input), input)
	}

	assert.True(t, IsCommand("/start"))
	assert.False(t, IsCommand("start"))
	assert.False(t, IsCommand(""))
}

func TestHandleUpdateRouting(t *testing.T) {
	bot := &fakeBot{}
	s := New(bot, logger.Discard())
	ctx := context.Background()

	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{UpdateID: 1, Message: privateMessage(strPtr("/history"))}))
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{UpdateID: 2, Message: privateMessage(strPtr("25"))}))
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{UpdateID: 3, Message: privateMessage(nil, domain.PhotoSize{FileID: "f"})}))
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{UpdateID: 4, CallbackQuery: &domain.CallbackQuery{
		ID:   "cb",
		From: &domain.TelegramUser{ID: 42},
		Data: strPtr("save_yes_42"),
	}}))

	assert.Equal(t, []string{"history"}, bot.commands)
	assert.Equal(t, []string{"25"}, bot.texts)
	assert.Equal(t, 1, bot.photos)
	assert.Equal(t, []string{"save_yes_42"}, bot.callbacks)
}

func TestHandleUpdateIgnoresBotsAndGroups(t *testing.T) {
	bot := &fakeBot{}
	s := New(bot, logger.Discard())
	ctx := context.Background()

	fromBot := privateMessage(strPtr("/start"))
	fromBot.From.IsBot = true
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{Message: fromBot}))

	group := privateMessage(strPtr("/start"))
	group.Chat.Type = "group"
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{Message: group}))

	anonymous := privateMessage(strPtr("/start"))
	anonymous.From = nil
	require.NoError(t, s.HandleUpdate(ctx, &domain.Update{Message: anonymous}))

	assert.Empty(t, bot.commands)
	assert.Error(t, s.HandleUpdate(ctx, nil))
}

func TestHandleUpdateErrors(t *testing.T) {
	bot := &fakeBot{err: domain.WrapBusinessError(errors.New("vision down"))}
	s := New(bot, logger.Discard())
	ctx := context.Background()

	assert.NoError(t, s.HandleUpdate(ctx, &domain.Update{Message: privateMessage(strPtr("/start"))}))

	bot.err = errors.New("store down")
	assert.Error(t, s.HandleUpdate(ctx, &domain.Update{Message: privateMessage(strPtr("/start"))}))
}
