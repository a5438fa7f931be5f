package bookings

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchday/internal/events"
	"matchday/internal/tickets"
	"matchday/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewController(nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "insufficient inventory is a 400 naming the tier",
			err:        fmt.Errorf("not enough tickets for %q: %w", "general", tickets.ErrInsufficientInventory),
			wantStatus: http.StatusBadRequest,
			wantInBody: "general",
		},
		{
			name:       "unknown tier",
			err:        tickets.ErrUnknownTierType,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate selection",
			err:        ErrDuplicateSelection,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "booking not found",
			err:        ErrBookingNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "event not found",
			err:        events.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "user not found",
			err:        users.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "foreign booking",
			err:        ErrNotOwner,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unclassified failure",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/bookings", nil)

			ctrl.respondServiceError(c, tt.err, "request failed")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantInBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantInBody)
			}
		})
	}
}
