package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const requestIDLength = 21

// NewRequestID returns a fresh nanoid used to correlate log lines and
// archived diagnostics of a single request.
func NewRequestID() string {
	id, err := gonanoid.New(requestIDLength)
	if err != nil {
		return ""
	}
	return id
}

// IsRequestID reports whether s has the shape of an id produced by NewRequestID.
// Client supplied X-Request-ID headers are only trusted when they pass this check.
func IsRequestID(s string) bool {
	if len(s) != requestIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
