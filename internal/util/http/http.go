// Package http fetches remote images for theme generation.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jfenske/themata/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "themata"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second
)

// Fetch retrieves the body at url with context and timeout support. A zero
// timeout uses DefaultTimeout. Any status other than 200 is an error.
func Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
