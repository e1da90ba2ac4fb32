// internal/gateway/fetch.go
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// AssetFetcher downloads a generated asset to a local file.
type AssetFetcher struct {
	client *http.Client
}

// NewAssetFetcher creates an AssetFetcher with a default timeout.
func NewAssetFetcher() *AssetFetcher {
	return &AssetFetcher{
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// Download fetches src and writes it to dir as poster_<millis>.png,
// returning the written path.
func (f *AssetFetcher) Download(ctx context.Context, src, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Unilogos/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read asset: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("poster_%d.png", time.Now().UnixMilli()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return path, nil
}
