package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetRequestID_StableWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	first := GetRequestID(c)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, GetRequestID(c))
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Nil(t, GetLogger(ctx))
	assert.Same(t, slog.Default(), GetLoggerOrDefault(ctx, nil))

	fallback := slog.New(slog.DiscardHandler)
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := slog.New(slog.DiscardHandler)
	ctx = WithLogger(WithRequestID(ctx, "req-1"), scoped)
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}
