package keycodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := Encode("SEG", "SEG_FM_BOTOES", "btnSalvar")
	assert.False(t, strings.ContainsAny(key, "/+="), "key must be URL-safe")

	parts, err := Decode(key, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEG", "SEG_FM_BOTOES", "btnSalvar"}, parts)
}

func TestDecodeRejectsWrongArity(t *testing.T) {
	key := Encode("A", "B")
	_, err := Decode(key, 3)
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("!!not-base64!!", 2)
	assert.Error(t, err)
}
