package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("pikachu-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pikachu-123", hash)

	assert.NoError(t, CompareHash(hash, "pikachu-123"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}
