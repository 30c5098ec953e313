package slug

import "strings"

const maxLen = 48

// Make lowercases input and joins runs of ASCII letters and digits with
// single hyphens, capped at maxLen bytes.
func Make(input string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(input) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			dash := pendingDash && b.Len() > 0
			need := 1
			if dash {
				need++
			}
			if b.Len()+need > maxLen {
				break
			}
			if dash {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
