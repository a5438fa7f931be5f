package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketTierAvailable(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		sold     int
		want     int
	}{
		{"untouched tier", 100, 0, 100},
		{"partially sold", 100, 37, 63},
		{"sold out", 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := TicketTier{Quantity: tt.quantity, Sold: tt.sold}
			assert.Equal(t, tt.want, tier.Available())
		})
	}
}
