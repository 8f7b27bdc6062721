// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"waypoint/internal/models"
)

// feedCursor is the decoded form of the opaque pagination token. For recent
// sort it is a keyset bound on (created_at, id); for popular sort it carries a
// row offset, since like counts shift under the reader and no stable keyset
// exists over them.
type feedCursor struct {
	Sort      string `json:"s"`
	CreatedAt int64  `json:"t,omitempty"` // unix microseconds
	ID        uint   `json:"id,omitempty"`
	Offset    int    `json:"o,omitempty"`
}

func (c feedCursor) createdAt() time.Time {
	return time.UnixMicro(c.CreatedAt).UTC()
}

func encodeCursor(c feedCursor) string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeCursor(raw string) (feedCursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return feedCursor{}, models.NewValidationError("Invalid cursor")
	}
	var c feedCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return feedCursor{}, models.NewValidationError("Invalid cursor")
	}
	return c, nil
}
