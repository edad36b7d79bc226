package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const fieldSeparator = "."

// EncodeMultiFieldToken creates an opaque, URL-safe cursor token from any number of string fields.
// Fields may contain any characters, including the separator.
func EncodeMultiFieldToken(fields ...string) string {
	encoded := make([]string, len(fields))
	for i, f := range fields {
		encoded[i] = base64.RawURLEncoding.EncodeToString([]byte(f))
	}
	return strings.Join(encoded, fieldSeparator)
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	parts := strings.Split(token, fieldSeparator)
	fields := make([]string, len(parts))
	for i, p := range parts {
		decoded, err := base64.RawURLEncoding.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pagination token format (field %d decode): %w", i, err)
		}
		fields[i] = string(decoded)
	}
	return fields, nil
}
