package validators

import "strings"

// NormalizePhone strips common separators and accepts 8 to 15 digits with an
// optional leading "+". The normalized form is returned on success.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var b strings.Builder
	digits := 0
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	if digits < 8 || digits > 15 {
		return "", false
	}
	return b.String(), true
}
