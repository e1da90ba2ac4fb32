// internal/controller/controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/user/unilogos/internal/gateway"
	"github.com/user/unilogos/internal/types"
)

// ErrGenerationInFlight is returned when a submission arrives while an
// earlier one is still waiting on the generation service. Requests are
// rejected rather than queued; the user resubmits once the current one
// finishes.
var ErrGenerationInFlight = errors.New("a generation request is already in flight")

// ErrNoPreview is returned by Download when nothing has been generated or
// selected yet.
var ErrNoPreview = errors.New("no image to download")

// AuthAPI is the login/signup exchange the controller depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*types.Session, string, error)
	Signup(ctx context.Context, email, password string) (*types.Session, string, error)
}

// GenerateAPI is the poster-generation exchange the controller depends on.
type GenerateAPI interface {
	Generate(ctx context.Context, request types.GenerationRequest) (*types.GenerationResult, error)
}

// Downloader fetches a generated asset to a local file.
type Downloader interface {
	Download(ctx context.Context, src, dir string) (string, error)
}

// PreviewStore persists the displayed asset reference across runs.
type PreviewStore interface {
	Load() string
	Store(href string)
}

// Controller wires user actions to the stores and gateways. It owns the
// displayed preview reference and the user-visible status line.
type Controller struct {
	sessions  types.SessionStore
	gallery   types.GalleryStore
	auth      AuthAPI
	generator GenerateAPI
	fetcher   Downloader
	previews  PreviewStore

	// Single slot: at most one generation request in flight at a time.
	inflight *semaphore.Weighted

	mu      sync.Mutex
	preview string
	status  string
}

// New creates a Controller and restores persisted state: a signed-in user
// from a previous run stays signed in and keeps the displayed preview.
func New(sessions types.SessionStore, gallery types.GalleryStore, auth AuthAPI, generator GenerateAPI, fetcher Downloader, previews PreviewStore) *Controller {
	c := &Controller{
		sessions:  sessions,
		gallery:   gallery,
		auth:      auth,
		generator: generator,
		fetcher:   fetcher,
		previews:  previews,
		inflight:  semaphore.NewWeighted(1),
	}
	if session := sessions.Restore(); session != nil {
		slog.Debug("session restored", "user_id", session.UserID)
	}
	c.preview = previews.Load()
	return c
}

// Submit sends a generation request and, on success, updates the preview
// and auto-saves the result to the signed-in user's gallery. A second
// submission while one is in flight fails with ErrGenerationInFlight.
func (c *Controller) Submit(ctx context.Context, request types.GenerationRequest) (*types.GenerationResult, error) {
	if !c.inflight.TryAcquire(1) {
		return nil, ErrGenerationInFlight
	}
	defer c.inflight.Release(1)

	c.setState("", "Generating...")

	result, err := c.generator.Generate(ctx, request)
	if err != nil {
		if errors.Is(err, gateway.ErrNoResult) {
			c.setState("", "No image returned")
		} else {
			c.setState("", fmt.Sprintf("Error: %s", err))
		}
		return nil, err
	}

	status := "Done"
	if session := c.sessions.Current(); session != nil {
		if err := c.gallery.Save(session.UserID, result.Href); err != nil {
			slog.Warn("failed to save generated image", "user_id", session.UserID, "error", err)
		} else {
			status = "Done - Saved"
		}
	}
	c.setState(result.Href, status)
	return result, nil
}

// Login exchanges credentials and persists the resulting session and token
// together.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	session, token, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.sessions.Set(session, token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Signup validates the form (confirmation match, minimum length),
// registers the account, and signs the user in.
func (c *Controller) Signup(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return &gateway.AuthError{Reason: "Passwords do not match"}
	}
	if len(password) < gateway.MinPasswordLength {
		return &gateway.AuthError{Reason: fmt.Sprintf("Password must be at least %d characters", gateway.MinPasswordLength)}
	}

	session, token, err := c.auth.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.sessions.Set(session, token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Logout clears the persisted session and token.
func (c *Controller) Logout() error {
	return c.sessions.Clear()
}

// Session returns the signed-in user, or nil.
func (c *Controller) Session() *types.Session {
	return c.sessions.Current()
}

// Reset clears the preview and status.
func (c *Controller) Reset() {
	c.setState("", "")
}

// Download fetches the currently displayed asset into dir and returns the
// written path.
func (c *Controller) Download(ctx context.Context, dir string) (string, error) {
	src := c.Preview()
	if src == "" {
		c.setStatus("No image to download")
		return "", ErrNoPreview
	}

	c.setStatus("Preparing download...")
	path, err := c.fetcher.Download(ctx, src, dir)
	if err != nil {
		c.setStatus("Download failed")
		return "", err
	}
	c.setStatus("Downloaded")
	return path, nil
}

// Gallery lists the signed-in user's saved images, newest first. Empty
// when signed out.
func (c *Controller) Gallery() []types.SavedImage {
	session := c.sessions.Current()
	if session == nil {
		return nil
	}
	return c.gallery.List(session.UserID)
}

// DeleteImage removes the saved image at the given position. The store
// reports the precondition failure when nobody is signed in.
func (c *Controller) DeleteImage(index int) error {
	var userID string
	if session := c.sessions.Current(); session != nil {
		userID = session.UserID
	}
	return c.gallery.Delete(userID, index)
}

// SelectImage sets the preview to a saved image from the gallery.
func (c *Controller) SelectImage(index int) error {
	images := c.Gallery()
	if index < 0 || index >= len(images) {
		return fmt.Errorf("no saved image at position %d", index)
	}
	c.setState(images[index].URL, "")
	return nil
}

// Preview returns the currently displayed asset reference, or "".
func (c *Controller) Preview() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// Status returns the current user-visible status line.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setState(preview, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preview = preview
	c.status = status
	c.previews.Store(preview)
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}
