package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaque(t *testing.T) {
	tok, err := NewOpaque()
	require.NoError(t, err)

	assert.Len(t, tok, opaqueLen*2)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err, "token must be hex-encoded")
}

func TestNewOpaque_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		tok, err := NewOpaque()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "tokens must not repeat")
		seen[tok] = struct{}{}
	}
}
