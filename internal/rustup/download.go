package rustup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Downloader fetches installer payloads over HTTP(S).
type Downloader struct {
	Client  HTTPClient
	MaxSize int64         // max payload size in bytes (0 = no limit)
	Timeout time.Duration // fetch timeout (0 = no extra timeout beyond context)
}

// Fetch downloads url and returns the body.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var reader io.Reader = resp.Body
	if d.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, d.MaxSize+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if d.MaxSize > 0 && int64(len(content)) > d.MaxSize {
		return nil, fmt.Errorf("%s exceeds max size %d bytes", url, d.MaxSize)
	}
	return content, nil
}
