package models

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID generates a 24-character lowercase hex identifier.
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic("models: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// IsValidID reports whether s is a well-formed 24-character hex identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
