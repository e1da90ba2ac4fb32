// internal/controller/events.go
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/unilogos/internal/types"
)

// Handler reacts to one named user event. Handlers are total: a payload of
// the wrong shape is an error return, never a panic.
type Handler func(ctx context.Context, payload any) error

// Registry maps named user events ("submit", "reset", ...) to their
// handlers, so the wiring between surface and logic is explicit and
// testable on its own.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty event registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler for the named event, replacing any existing one.
func (r *Registry) Register(event string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[event] = handler
}

// Dispatch invokes the handler registered for the event. Returns an error
// if no handler is registered.
func (r *Registry) Dispatch(ctx context.Context, event string, payload any) error {
	r.mu.RLock()
	handler, ok := r.handlers[event]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler for event: %s", event)
	}
	return handler(ctx, payload)
}

// Credentials is the payload for "login" events.
type Credentials struct {
	Email    string
	Password string
}

// SignupForm is the payload for "signup" events.
type SignupForm struct {
	Email    string
	Password string
	Confirm  string
}

// Events returns a registry with the standard user events bound to this
// controller.
func (c *Controller) Events() *Registry {
	r := NewRegistry()

	r.Register("submit", func(ctx context.Context, payload any) error {
		request, ok := payload.(types.GenerationRequest)
		if !ok {
			return badPayload("submit", payload)
		}
		_, err := c.Submit(ctx, request)
		return err
	})
	r.Register("reset", func(ctx context.Context, payload any) error {
		c.Reset()
		return nil
	})
	r.Register("download", func(ctx context.Context, payload any) error {
		dir, ok := payload.(string)
		if !ok {
			return badPayload("download", payload)
		}
		_, err := c.Download(ctx, dir)
		return err
	})
	r.Register("login", func(ctx context.Context, payload any) error {
		creds, ok := payload.(Credentials)
		if !ok {
			return badPayload("login", payload)
		}
		return c.Login(ctx, creds.Email, creds.Password)
	})
	r.Register("signup", func(ctx context.Context, payload any) error {
		form, ok := payload.(SignupForm)
		if !ok {
			return badPayload("signup", payload)
		}
		return c.Signup(ctx, form.Email, form.Password, form.Confirm)
	})
	r.Register("logout", func(ctx context.Context, payload any) error {
		return c.Logout()
	})
	r.Register("gallery:delete", func(ctx context.Context, payload any) error {
		index, ok := payload.(int)
		if !ok {
			return badPayload("gallery:delete", payload)
		}
		return c.DeleteImage(index)
	})
	r.Register("gallery:select", func(ctx context.Context, payload any) error {
		index, ok := payload.(int)
		if !ok {
			return badPayload("gallery:select", payload)
		}
		return c.SelectImage(index)
	})

	return r
}

func badPayload(event string, payload any) error {
	return fmt.Errorf("event %s: unexpected payload type %T", event, payload)
}
