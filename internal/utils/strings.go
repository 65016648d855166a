package utils

import "fmt"

// TruncateString truncates a string to maxLen characters, adding a suffix with
// the original length. Strings at or below maxLen are returned unchanged.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
