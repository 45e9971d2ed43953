package healthcheckController

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func get(c *HealthCheckController, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c.RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(New(fakePinger{err: errors.New("down")}, "food_bot", logger.Discard()), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"food_bot"`)
}

func TestReady(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(New(fakePinger{}, "food_bot", logger.Discard()), "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(New(fakePinger{err: errors.New("down")}, "food_bot", logger.Discard()), "/ready").Code)
}
