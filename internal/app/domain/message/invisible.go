package message

import (
	"strings"
	"unicode"
)

const combiningGraphemeJoiner = '\u034F'

func isInvisible(r rune) bool {
	switch {
	case unicode.Is(unicode.Cf, r):
		return true
	case r == combiningGraphemeJoiner:
		return true
	// Variation Selectors and their supplement
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return true
	// Tags block, U+E0000 is what chat clients append to bypass the duplicate message check
	case r >= 0xE0000 && r <= 0xE007F:
		return true
	}
	return false
}

// StripInvisible drops zero width and format characters from chat text.
func StripInvisible(s string) string {
	if strings.IndexFunc(s, isInvisible) == -1 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isInvisible(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
