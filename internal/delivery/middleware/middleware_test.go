package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"crawl/config"
	deliverycontext "crawl/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	e := echo.New()
	var buf bytes.Buffer
	mw := NewRequestIDMiddleware(newLogger(&buf))

	var seenID string
	e.GET("/", mw.Process(func(c echo.Context) error {
		seenID = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		deliverycontext.GetLogger(c.Request().Context()).Info("inside")

		return c.NoContent(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, buf.String(), seenID)
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	e := echo.New()
	mw := NewRequestIDMiddleware(slog.Default())
	e.GET("/", mw.Process(func(c echo.Context) error {
		return c.String(http.StatusOK, deliverycontext.GetRequestID(c))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "client-id", rec.Body.String())
	assert.Equal(t, "client-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		status    int
		wantLog   bool
		wantLevel string
	}{
		{name: "success quiet", status: http.StatusOK},
		{name: "success in debug", debug: true, status: http.StatusOK, wantLog: true, wantLevel: "INFO"},
		{name: "client error", status: http.StatusBadRequest, wantLog: true, wantLevel: "WARN"},
		{name: "server error", status: http.StatusBadGateway, wantLog: true, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			e := echo.New()
			mw := NewLoggerMiddleware(newLogger(&buf), cfg)
			e.GET("/crawl", mw.Handle(func(c echo.Context) error {
				if tt.status >= 400 {
					return echo.NewHTTPError(tt.status, "failed")
				}

				return c.NoContent(tt.status)
			}))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crawl?lat=1", nil))
			assert.Equal(t, tt.status, rec.Code)

			if !tt.wantLog {
				assert.Empty(t, buf.String())

				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/crawl", entry["uri"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "lat=1", entry["query"])
		})
	}
}

func TestRequestIDMiddleware_ReplacesOversizedID(t *testing.T) {
	e := echo.New()
	mw := NewRequestIDMiddleware(slog.Default())
	e.GET("/", mw.Process(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, string(bytes.Repeat([]byte("x"), 200)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Len(t, rec.Header().Get(deliverycontext.HeaderXRequestID), 36)
}
