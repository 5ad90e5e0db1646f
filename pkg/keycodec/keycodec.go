// Package keycodec encodes composite business keys for use as a single URL
// path segment. Parts join on '|' and the result is base64url without
// padding.
package keycodec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const separator = "|"

// Encode joins the key parts and base64url-encodes them.
func Encode(parts ...string) string {
	joined := strings.Join(parts, separator)
	return base64.RawURLEncoding.EncodeToString([]byte(joined))
}

// Decode reverses Encode and checks the expected number of parts.
func Decode(key string, want int) ([]string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("keycodec: invalid key encoding: %w", err)
	}
	parts := strings.Split(string(raw), separator)
	if len(parts) != want {
		return nil, fmt.Errorf("keycodec: expected %d key parts, got %d", want, len(parts))
	}
	return parts, nil
}
