// internal/state/gallery.go
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/user/unilogos/internal/types"
)

// MaxSavedImages caps how many generated images are kept per user.
// Saving beyond the cap discards the oldest entries.
const MaxSavedImages = 8

// ErrNoSession is returned by gallery mutations attempted without a
// signed-in user.
var ErrNoSession = errors.New("no authenticated user")

// GalleryStore keeps a newest-first, capacity-bounded list of generated
// images per user. Lists are partitioned by user ID; operations on one
// user's gallery never touch another's.
type GalleryStore struct {
	kv types.KV
	mu sync.Mutex
}

// NewGalleryStore creates a GalleryStore over the given KV backend.
func NewGalleryStore(kv types.KV) *GalleryStore {
	return &GalleryStore{kv: kv}
}

// load reads a user's saved images. Absent or malformed data is an empty
// list; malformation is logged, never surfaced.
func (g *GalleryStore) load(userID string) []types.SavedImage {
	data, err := g.kv.Get(types.GalleryKey(userID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			slog.Warn("failed to read gallery", "user_id", userID, "error", err)
		}
		return nil
	}

	var images []types.SavedImage
	if err := json.Unmarshal(data, &images); err != nil {
		slog.Warn("malformed gallery data, treating as empty", "user_id", userID, "error", err)
		return nil
	}
	return images
}

// persist writes a user's saved images back to storage.
func (g *GalleryStore) persist(userID string, images []types.SavedImage) error {
	data, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("marshal gallery: %w", err)
	}
	if err := g.kv.Set(types.GalleryKey(userID), data); err != nil {
		return fmt.Errorf("persist gallery: %w", err)
	}
	return nil
}

// List returns the user's saved images, newest first. The result is empty
// when there is no user, no stored data, or the stored data fails to parse.
func (g *GalleryStore) List(userID string) []types.SavedImage {
	if userID == "" {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(userID)
}

// Save prepends a new image for the user and truncates the list to
// MaxSavedImages, dropping the oldest overflow.
func (g *GalleryStore) Save(userID, url string) error {
	if userID == "" {
		return ErrNoSession
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	images := g.load(userID)
	images = append([]types.SavedImage{{
		URL:       url,
		Timestamp: time.Now().UnixMilli(),
	}}, images...)

	if len(images) > MaxSavedImages {
		images = images[:MaxSavedImages]
	}

	return g.persist(userID, images)
}

// Delete removes the image at the given position (0 = newest) and persists
// the result. An out-of-range index leaves the list unchanged.
func (g *GalleryStore) Delete(userID string, index int) error {
	if userID == "" {
		return ErrNoSession
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	images := g.load(userID)
	if index < 0 || index >= len(images) {
		return nil
	}

	images = append(images[:index], images[index+1:]...)
	return g.persist(userID, images)
}
