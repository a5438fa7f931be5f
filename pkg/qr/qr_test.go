package qr

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	renderer := NewRenderer()

	dataURL, err := renderer.Render(uuid.New().String())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)

	// PNG signature
	require.GreaterOrEqual(t, len(raw), 8)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, raw[:8])
}

func TestRender_DistinctInputsDistinctCodes(t *testing.T) {
	renderer := NewRenderer()

	first, err := renderer.Render("booking-a")
	require.NoError(t, err)
	second, err := renderer.Render("booking-b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
