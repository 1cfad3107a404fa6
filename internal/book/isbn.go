package book

import (
	"errors"
	"strings"
)

var errInvalidISBN = errors.New("invalid ISBN")

// NormalizeISBN strips separators and an optional "ISBN" prefix, verifies the
// ISBN-10 or ISBN-13 check digit and returns the compact form.
func NormalizeISBN(raw string) (string, error) {
	compact := strings.ToUpper(strings.TrimSpace(raw))
	compact = strings.TrimPrefix(compact, "ISBN")
	compact = strings.NewReplacer("-", "", " ", "", ".", "", ":", "").Replace(compact)

	switch len(compact) {
	case 10:
		if !validISBN10(compact) {
			return "", errInvalidISBN
		}
	case 13:
		if !validISBN13(compact) {
			return "", errInvalidISBN
		}
	default:
		return "", errInvalidISBN
	}
	return compact, nil
}

func validISBN10(s string) bool {
	sum := 0
	for i, r := range s {
		var value int
		switch {
		case r >= '0' && r <= '9':
			value = int(r - '0')
		case r == 'X' && i == 9:
			value = 10
		default:
			return false
		}
		sum += (10 - i) * value
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		value := int(r - '0')
		if i%2 == 1 {
			value *= 3
		}
		sum += value
	}
	return sum%10 == 0
}
