package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rePincode = regexp.MustCompile(`^[0-9]{5,6}$`)
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone   = regexp.MustCompile(`^\+?[0-9][0-9 -]{7,14}$`)
	reQ       = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

var statuses = map[string]bool{
	"pending": true, "confirmed": true, "dispatched": true,
	"shipped": true, "delivered": true, "cancelled": true,
}

var difficulties = map[string]bool{
	"": true, "beginner": true, "intermediate": true, "advanced": true,
}

func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePincode.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	} // clamp to avoid abuse
	return n
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Status validates the admin order-status dropdown values. Any stored status
// may move to any other; only the vocabulary is checked.
func Status(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, statuses[s]
}

func Difficulty(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, difficulties[s]
}

// Slug normalizes a name into a URL-safe slug: lowercase, whitespace to
// hyphens. Returns the given slug unchanged when it is already set.
func Slug(slug, name string) string {
	slug = strings.TrimSpace(slug)
	if slug != "" {
		return slug
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// SlugOK reports whether an explicit slug is URL-safe.
func SlugOK(s string) bool {
	return reSlug.MatchString(s)
}

// Password enforces a simple strength window for account creation.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
