package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewClient(&Config{
		BaseURL:     ts.URL + "/v1",
		APIKey:      "hf_test",
		Model:       "test-vl-model",
		MaxTokens:   450,
		Temperature: 0.35,
		Timeout:     5 * time.Second,
	}, logger.Discard())
}

func TestAnalyzeImageSendsPromptAndImage(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  🍽️Recognized: Toast\n🔥Calories: 120 kcal \n"}}]}`))
	})

	text, err := c.AnalyzeImage(context.Background(), []byte{0xff, 0xd8}, "Analyze this food image carefully.")
	require.NoError(t, err)
	assert.Equal(t, "🍽️Recognized: Toast\n🔥Calories: 120 kcal", text)

	assert.Equal(t, "test-vl-model", got["model"])
	assert.EqualValues(t, 450, got["max_tokens"])

	messages := got["messages"].([]interface{})
	require.Len(t, messages, 1)
	parts := messages[0].(map[string]interface{})["content"].([]interface{})
	require.Len(t, parts, 2)
	assert.Equal(t, "Analyze this food image carefully.", parts[0].(map[string]interface{})["text"])
	url := parts[1].(map[string]interface{})["image_url"].(map[string]interface{})["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestAnalyzeImageEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	text, err := c.AnalyzeImage(context.Background(), []byte{1}, "prompt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestAnalyzeImageErrorKeepsDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached for requests","type":"rate_limit"}}`))
	})

	_, err := c.AnalyzeImage(context.Background(), []byte{1}, "prompt")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "rate limit")

	var collaboratorErr *domain.CollaboratorError
	require.ErrorAs(t, err, &collaboratorErr)
	cause := domain.CollaboratorCause(err)
	assert.NotContains(t, cause.Error(), "vision inference failed")
	assert.Contains(t, cause.Error(), "Rate limit reached for requests")
}

func TestImageDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,AQID", ImageDataURL([]byte{1, 2, 3}))
}
