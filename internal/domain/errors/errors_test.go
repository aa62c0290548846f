package errors

import (
	"net/http"
	"testing"

	"crawl/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrUnreachableLocation.WithDetails("The Old Trip")

	assert.ErrorIs(t, detailed, ErrUnreachableLocation)
	assert.NotErrorIs(t, detailed, ErrNoItinerary)
	assert.Equal(t, "The Old Trip", detailed.Details())
	assert.Empty(t, ErrUnreachableLocation.Details())
	assert.Equal(t, http.StatusUnprocessableEntity, detailed.HTTPCode())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrNoItinerary.WrapMessage("plan")

	assert.ErrorIs(t, err, ErrNoItinerary)
	appErr, ok := errors.AsType[AppError](err)
	require.True(t, ok)
	assert.Equal(t, "NO_ITINERARY", appErr.ErrorCode())
	assert.Equal(t, "plan: "+ErrNoItinerary.Message(), err.Error())
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		message     string
		details     any
		wantMessage string
		wantDetails any
	}{
		{name: "client error keeps details", status: http.StatusBadRequest, message: "bad", details: "lat", wantMessage: "bad", wantDetails: "lat"},
		{name: "server error drops details", status: http.StatusBadGateway, message: "upstream", details: "REQUEST_DENIED", wantMessage: "upstream"},
		{name: "empty message uses status text", status: http.StatusNotFound, wantMessage: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(tt.status, "CODE", tt.message, tt.details, "req-1")

			require.NotNil(t, resp.Error)
			assert.Equal(t, "CODE", resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
			assert.Equal(t, "req-1", resp.Meta.RequestID)
		})
	}
}
