// Package idgen generates short, URL-safe identifiers for requests and
// export runs, backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes distinguish the kind of identifier at a glance in logs.
const (
	RequestPrefix = "req-"
	ExportPrefix  = "exp-"
)

// Alphabet defines the character set used for the random portion of the ID.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
const Length = 12

// maxExternalLen bounds caller-supplied request ids accepted by Accept.
const maxExternalLen = 64

// RequestID returns a new request id.
func RequestID() (string, error) {
	return WithPrefix(RequestPrefix)
}

// ExportID returns a new id for a backup export run.
func ExportID() (string, error) {
	return WithPrefix(ExportPrefix)
}

// WithPrefix returns a new unique ID with the given prefix.
func WithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Accept reports whether a caller-supplied id (e.g. an incoming
// X-Request-ID header) is safe to propagate into logs and responses.
func Accept(id string) bool {
	if id == "" || len(id) > maxExternalLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
