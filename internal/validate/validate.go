package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	reQ     = regexp.MustCompile(`^[\p{L}\p{N} _'.,&-]{1,50}$`)
)

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password: at least 6 characters with a digit.
func Password(s string) bool {
	return len(s) >= 6 && strings.ContainsFunc(s, unicode.IsDigit)
}

// ResetPassword additionally requires a letter.
func ResetPassword(s string) bool {
	return Password(s) && strings.ContainsFunc(s, unicode.IsLetter)
}

// Q validates a catalog filter: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	s = truncateRunes(s, 50)
	return s, reQ.MatchString(s)
}

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// MaxQty is the largest quantity a single line may hold.
const MaxQty = 99

// ClampQty bounds a requested quantity to 1..99.
func ClampQty(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQty {
		return MaxQty
	}
	return n
}

// ID parses a positive numeric product or order id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Index parses a zero-based line index.
func Index(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
