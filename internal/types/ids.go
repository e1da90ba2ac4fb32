// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// GalleryKey returns the storage key holding the given user's saved images.
// Gallery state is partitioned per user; two users never share a key.
func GalleryKey(userID string) string {
	return "images_" + userID
}
