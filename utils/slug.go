package utils

import "strings"

// GenerateSlug builds a URL-safe slug from a course title. Collisions
// are resolved by the caller with a timestamp suffix.
func GenerateSlug(title string) string {
	var b strings.Builder
	lastDash := true // suppress leading dashes

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
