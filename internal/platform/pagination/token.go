package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

var tokenEncoding = base64.RawURLEncoding

// EncodeToken turns a cursor into an opaque page token. An empty cursor
// encodes to the empty string, which callers treat as "no further pages".
func EncodeToken(cursor Cursor) (string, error) {
	if cursor.LastID == "" {
		return "", nil
	}
	raw, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("pagination: encode token: %w", err)
	}
	return tokenEncoding.EncodeToString(raw), nil
}

// DecodeToken reverses EncodeToken. A blank token yields the zero cursor,
// anything else that fails to parse reports ErrInvalidPageToken.
func DecodeToken(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, nil
	}
	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	return cursor, nil
}
