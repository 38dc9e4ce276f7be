package view

import "fmt"

// FormatAverageTime renders a duration in seconds as zero-padded
// HH:MM:SS. Hours are unbounded; fractional seconds are truncated.
func FormatAverageTime(seconds float64) string {
	total := int(seconds)

	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
