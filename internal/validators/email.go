package validators

import (
	"net/mail"
	"strings"
)

// NormalizeEmail lower-cases and trims. Emails are case-insensitive join keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>"; only bare addresses are valid here.
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}
