package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		assert.Len(t, code, 8)
		for _, ch := range code {
			assert.True(t, (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'), code)
		}
		seen[code] = true
	}
	// 100 kode random 36^8 nggak mungkin tabrakan semua
	assert.Greater(t, len(seen), 90)
}
