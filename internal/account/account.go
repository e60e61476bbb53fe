// Package account validates user identifiers before any store query runs.
//
// The trade store's native identifier format is a 24-character hex string
// (MongoDB ObjectID style, inherited from the upstream user service).
// Validation happens at the HTTP boundary so malformed identifiers are
// rejected without touching the store.
package account

import (
	"errors"
	"fmt"
	"regexp"
)

// userIDRegex matches the store's native identifier format: exactly 24 hex
// characters. Example: 64f1c2a9e3b8d4f5a6b7c8d9
var userIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ErrInvalidUserID is returned when an identifier fails format validation.
var ErrInvalidUserID = errors.New("account: invalid user id format")

// ParseUserID validates a user identifier string and returns it unchanged.
func ParseUserID(id string) (string, error) {
	if !userIDRegex.MatchString(id) {
		return "", fmt.Errorf("%w: %q (expected 24 hex characters)", ErrInvalidUserID, id)
	}
	return id, nil
}
