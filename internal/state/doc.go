// Package state provides filesystem-backed storage implementations.
package state

import "github.com/user/unilogos/internal/types"

// Compile-time interface compliance checks.
var _ types.KV = (*FileKV)(nil)
var _ types.SessionStore = (*SessionStore)(nil)
var _ types.GalleryStore = (*GalleryStore)(nil)
