package bytesize

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0B"},
		{2, "2B"},
		{999, "999B"},
		{1000, "1000B"},
		{1001, "1.00KB"},
		{1536, "1.53KB"},
		{999999, "999.99KB"},
		{1000000, "1.00MB"},
		{1234567, "1.23MB"},
		{1000000000, "1.00GB"},
		{1000000000000, "1.00TB"},
		{1000000000000000, "1.00PB"},
		{999999999999999999, "999.99PB"},
		{math.MaxInt64, "9223.37PB"},
		{-5, "-5B"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.n))
		})
	}
}

// TestFormat_MonotoneUnits verifies the displayed unit never moves backwards
// as the count grows.
func TestFormat_MonotoneUnits(t *testing.T) {
	rank := func(s string) int {
		for i, u := range []string{"PB", "TB", "GB", "MB", "KB"} {
			if strings.HasSuffix(s, u) {
				return 5 - i
			}
		}
		return 0
	}

	prev := 0
	for n := int64(1); n > 0 && n < math.MaxInt64/7; n = n*7 + 3 {
		r := rank(Format(n))
		assert.GreaterOrEqual(t, r, prev, "Format(%d) = %s", n, Format(n))
		prev = r
	}
}
