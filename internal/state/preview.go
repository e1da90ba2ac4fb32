// internal/state/preview.go
package state

import (
	"errors"
	"log/slog"

	"github.com/user/unilogos/internal/types"
)

const keyPreview = "preview"

// PreviewStore remembers the asset reference currently on display, so the
// preview survives process restarts the way the session does. It is best
// effort UI state; persistence failures are logged, never surfaced.
type PreviewStore struct {
	kv types.KV
}

// NewPreviewStore creates a PreviewStore over the given KV backend.
func NewPreviewStore(kv types.KV) *PreviewStore {
	return &PreviewStore{kv: kv}
}

// Load returns the persisted preview reference, or "" when none is set.
func (p *PreviewStore) Load() string {
	data, err := p.kv.Get(keyPreview)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			slog.Warn("failed to read preview state", "error", err)
		}
		return ""
	}
	return string(data)
}

// Store persists the preview reference; an empty href clears it.
func (p *PreviewStore) Store(href string) {
	var err error
	if href == "" {
		err = p.kv.Delete(keyPreview)
	} else {
		err = p.kv.Set(keyPreview, []byte(href))
	}
	if err != nil {
		slog.Warn("failed to persist preview state", "error", err)
	}
}
