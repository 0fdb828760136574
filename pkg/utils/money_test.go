package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinor(t *testing.T) {
	cases := map[int64]string{
		0:            "0.00",
		5:            "0.05",
		100:          "1.00",
		2_500_00:     "2,500.00",
		60_000_00:    "60,000.00",
		1_234_567_89: "1,234,567.89",
		-2_500_00:    "-2,500.00",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatMinor(amount))
	}
}
