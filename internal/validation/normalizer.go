package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blog-comments-api/internal/models"
)

// emailRegex is deliberately loose: local@domain.tld with no whitespace.
// Anything stricter rejects real addresses for no moderation benefit.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeName trims the author name and truncates it to the maximum
// length. Empty input stays empty; validation decides whether that is an
// error.
func NormalizeName(value string) string {
	name := strings.TrimSpace(value)
	if name == "" {
		return ""
	}
	return truncate(name, models.MaxNameLength)
}

// NormalizeEmail trims, lowercases and truncates the author email.
func NormalizeEmail(value string) string {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return ""
	}
	return truncate(email, models.MaxEmailLength)
}

// NormalizeContent trims the comment body and truncates it to the
// maximum length.
func NormalizeContent(value string) string {
	content := strings.TrimSpace(value)
	if content == "" {
		return ""
	}
	return truncate(content, models.MaxContentLength)
}

// NormalizeSlug trims and lowercases a post slug. Slugs are never
// truncated.
func NormalizeSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeScope maps the literal "guestbook" to the guestbook scope.
// Every other value, including empty, means post scope.
func NormalizeScope(value string) string {
	scope := strings.ToLower(strings.TrimSpace(value))
	if scope == models.ScopeGuestbook {
		return models.ScopeGuestbook
	}
	return models.ScopePost
}

// ValidEmail reports whether the email is acceptable. Empty means "no
// email provided" and is valid.
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailRegex.MatchString(email)
}

// truncate cuts on rune boundaries so truncation never produces invalid
// UTF-8.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
