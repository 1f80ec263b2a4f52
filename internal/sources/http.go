package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dvloznov/bankview/internal/logger"
)

// HTTPFetcher downloads a table export with a GET request.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// Fetch returns the response body. Any non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPFetcher.Fetch: building request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPFetcher.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTPFetcher.Fetch: %s: %w: %d", f.URL, ErrBadStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("HTTPFetcher.Fetch: reading body: %w", err)
	}

	log.Debug().Str("source", f.URL).Int("bytes", len(data)).Msg("Fetched source")
	return data, nil
}

func (f *HTTPFetcher) Describe() string { return f.URL }
