// Package bytesize renders byte counts as short human-readable strings.
package bytesize

import (
	"fmt"
	"math"
)

var units = []string{"KB", "MB", "GB", "TB", "PB"}

// Format renders n with base-1000 units and two decimals, for example
// "999.99KB" or "1.00MB". Counts up to 1000 are rendered exactly in bytes,
// so Format(1000) is "1000B".
//
// Scaling uses a fixed-point value in hundredths of a unit and advances
// while the scaled value is at least 1000.00; after PB it stops.
func Format(n int64) string {
	if n <= 1000 {
		return fmt.Sprintf("%dB", n)
	}

	var (
		scaled int64
		unit   int
	)
	if n > math.MaxInt64/100 {
		// n*100/1000 without the overflowing multiply.
		scaled = n / 10
		unit = 1
	} else {
		scaled = n * 100
	}

	for ; scaled >= 100000 && unit < len(units); unit++ {
		scaled /= 1000
	}
	return fmt.Sprintf("%d.%02d%s", scaled/100, scaled%100, units[unit-1])
}
