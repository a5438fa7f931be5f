package tickets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	l := NewLedger(nil)
	eventID := uuid.New()

	tests := []struct {
		name     string
		quantity int
	}{
		{"zero quantity", 0},
		{"negative quantity", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Rejected before any storage access, so a nil tx is safe
			err := l.Reserve(nil, eventID, "general", tt.quantity)
			assert.Error(t, err)
		})
	}
}
