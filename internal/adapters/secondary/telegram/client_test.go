package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

type recordedCall struct {
	Path string
	Body map[string]interface{}
}

type fakeBotAPI struct {
	mu    sync.Mutex
	calls []recordedCall
	reply map[string]string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Path: r.URL.Path, Body: body})
	reply, ok := f.reply[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		reply = `{"ok":true,"result":true}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(reply))
}

func (f *fakeBotAPI) last() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestClient(t *testing.T, api *fakeBotAPI) *Client {
	t.Helper()
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	return newClient(&Config{BotToken: "TOKEN", APIURL: ts.URL + "/"}, ts.Client(), logger.Discard())
}

func TestReplyToMessageWithKeyboard(t *testing.T) {
	api := &fakeBotAPI{reply: map[string]string{
		"/botTOKEN/sendMessage": `{"ok":true,"result":{"message_id":7,"chat":{"id":1}}}`,
	}}
	c := newTestClient(t, api)

	keyboard := domain.InlineKeyboard([]domain.InlineButton{
		{Text: "Yes, save this", CallbackData: "save_yes_1"},
		{Text: "No, thanks", CallbackData: "save_no_1"},
	})
	require.NoError(t, c.ReplyToMessage(context.Background(), 1, 5, "hello", keyboard))

	call := api.last()
	assert.Equal(t, "/botTOKEN/sendMessage", call.Path)
	assert.Equal(t, "hello", call.Body["text"])
	assert.EqualValues(t, 5, call.Body["reply_to_message_id"])

	markup := call.Body["reply_markup"].(map[string]interface{})
	rows := markup["inline_keyboard"].([]interface{})
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
}

func TestAPIErrorIsReturned(t *testing.T) {
	api := &fakeBotAPI{reply: map[string]string{
		"/botTOKEN/editMessageText": `{"ok":false,"error_code":400,"description":"Bad Request: message is not modified"}`,
	}}
	c := newTestClient(t, api)

	err := c.EditMessageText(context.Background(), 1, 2, "same")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "editMessageText", apiErr.Method)
}

func TestGetFileAndDownload(t *testing.T) {
	api := &fakeBotAPI{reply: map[string]string{
		"/botTOKEN/getFile":                `{"ok":true,"result":{"file_id":"abc","file_path":"photos/file_1.jpg"}}`,
		"/file/botTOKEN/photos/file_1.jpg": "JPEGDATA",
	}}
	c := newTestClient(t, api)
	ctx := context.Background()

	file, err := c.GetFile(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "photos/file_1.jpg", file.FilePath)

	data, err := c.DownloadFile(ctx, file.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("JPEGDATA"), data)
}

func TestGetFileWithoutPath(t *testing.T) {
	api := &fakeBotAPI{reply: map[string]string{
		"/botTOKEN/getFile": `{"ok":true,"result":{"file_id":"abc"}}`,
	}}
	c := newTestClient(t, api)

	_, err := c.GetFile(context.Background(), "abc")
	assert.Error(t, err)
}

func TestSetWebhookSendsSecret(t *testing.T) {
	api := &fakeBotAPI{}
	c := newTestClient(t, api)

	require.NoError(t, c.SetWebhook(context.Background(), "https://example.org/webhook/", "s3cret"))
	call := api.last()
	assert.Equal(t, "/botTOKEN/setWebhook", call.Path)
	assert.Equal(t, "s3cret", call.Body["secret_token"])
}

func TestPollerDeliversUpdates(t *testing.T) {
	api := &fakeBotAPI{reply: map[string]string{
		"/botTOKEN/getUpdates": `{"ok":true,"result":[{"update_id":10,"message":{"message_id":1,"chat":{"id":1,"type":"private"},"text":"/start"}}]}`,
	}}
	c := newTestClient(t, api)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan *domain.Update, 1)
	poller := NewPoller(c, &Config{PollingTimeout: 1}, func(_ context.Context, u *domain.Update) error {
		select {
		case received <- u:
		default:
		}
		cancel()
		return nil
	}, logger.Discard())

	err := poller.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	u := <-received
	assert.Equal(t, int64(10), u.UpdateID)
	require.NotNil(t, u.Message)
	assert.Equal(t, "/start", *u.Message.Text)
	assert.Equal(t, int64(11), poller.lastUpdateID)
}
