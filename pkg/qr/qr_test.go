package qr

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDataURL(t *testing.T) {
	url, err := NewGenerator().DataURL("session_id=sess-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestGeneratorDataURLEmptyPayload(t *testing.T) {
	_, err := NewGenerator().DataURL("")
	require.Error(t, err)
}
