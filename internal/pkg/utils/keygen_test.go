package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey("dk-", 40)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "dk-"))
	assert.Len(t, key, len("dk-")+40)

	for _, ch := range key[len("dk-"):] {
		assert.Contains(t, base62Chars, string(ch))
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key, err := GenerateKey("", 48)
		assert.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
