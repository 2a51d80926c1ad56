package oauth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateState_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		state, err := GenerateState()
		require.NoError(t, err)
		assert.False(t, seen[state], "state repeated")
		seen[state] = true
	}
}

func TestGenerateState_Encoding(t *testing.T) {
	state, err := GenerateState()
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(state)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
