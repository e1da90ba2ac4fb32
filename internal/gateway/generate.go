// internal/gateway/generate.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/unilogos/internal/types"
)

// Generation is slow, so the cap is generous but finite.
const defaultGenerateTimeout = 60 * time.Second

const defaultGenerationError = "generation_failed"

// GenerationGateway submits poster-generation requests to the remote
// generation service. One request, one response, no retries.
type GenerationGateway struct {
	baseURL string
	client  *http.Client
}

// NewGenerationGateway creates a GenerationGateway for the given API base
// URL. A non-positive timeout falls back to the default.
func NewGenerationGateway(baseURL string, timeout time.Duration) *GenerationGateway {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &GenerationGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateResponse struct {
	Href  string `json:"href"`
	Error string `json:"error"`
}

// Generate submits the request and returns the produced asset reference.
// A rejected request surfaces as GenerationError; a successful request
// with no asset surfaces as ErrNoResult.
func (g *GenerationGateway) Generate(ctx context.Context, request types.GenerationRequest) (*types.GenerationResult, error) {
	request = request.Normalize()

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	requestID := types.NewRequestID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generateposter", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", string(requestID))

	slog.Debug("submitting generation request",
		"request_id", string(requestID),
		"generation_type", request.GenerationType,
		"aspect_ratio", request.AspectRatio,
	)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("generation request failed", "request_id", string(requestID), "error", err)
		return nil, &GenerationError{Message: defaultGenerationError}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("generation response unreadable", "request_id", string(requestID), "error", err)
		return nil, &GenerationError{Message: defaultGenerationError}
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("parse generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if msg == "" {
			msg = defaultGenerationError
		}
		return nil, &GenerationError{Message: msg}
	}

	if parsed.Href == "" {
		return nil, ErrNoResult
	}
	return &types.GenerationResult{Href: parsed.Href}, nil
}
