package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern accepts anything shaped like local@domain.tld
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// PhonePattern is the strict rule: a leading + and 6 to 15 digits
	PhonePattern = `^\+\d{6,15}$`

	// ZipCodePattern accepts 12345 or 12345-6789
	ZipCodePattern = `^\d{5}(-\d{4})?$`

	// PasswordMinLength is the minimum password length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	Phone   *regexp.Regexp
	ZipCode *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	Phone:   regexp.MustCompile(PhonePattern),
	ZipCode: regexp.MustCompile(ZipCodePattern),
}

// IsValidEmail reports whether email looks like an address
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidPhoneNumber applies the strict phone rule
func IsValidPhoneNumber(phone string) bool {
	return CompiledPatterns.Phone.MatchString(phone)
}

// IsValidPassword requires at least PasswordMinLength ASCII letters and digits
// with at least one of each.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// IsValidURL requires an absolute URL with both scheme and host
func IsValidURL(raw string) bool {
	if strings.TrimSpace(raw) != raw || raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsValidZipCode reports whether zip matches ZipCodePattern
func IsValidZipCode(zip string) bool {
	return CompiledPatterns.ZipCode.MatchString(zip)
}
