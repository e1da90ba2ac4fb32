// internal/types/interfaces.go
package types

// KV is a string-keyed persistence capability. Stores are built on top of
// it so the backing medium (files here, anything else elsewhere) can be
// swapped without touching store logic.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type SessionStore interface {
	Restore() *Session
	Set(session *Session, token string) error
	Clear() error
	Current() *Session
	Token() string
}

type GalleryStore interface {
	List(userID string) []SavedImage
	Save(userID, url string) error
	Delete(userID string, index int) error
}
