// Package email derives human-readable names from email addresses.
package email

import (
	"strings"
	"unicode"
)

// DeriveNameFromEmail builds a display name from the address's local part,
// splitting on common separators and capitalizing each piece. Registration
// uses it when the actor leaves the display name blank, so "yusuf.khan@x"
// becomes "Yusuf Khan". Addresses with an empty local part fall back to
// "Community Member".
func DeriveNameFromEmail(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Community Member"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
