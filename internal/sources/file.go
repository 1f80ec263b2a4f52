package sources

import (
	"context"
	"fmt"
	"os"
)

// FileFetcher reads a local file.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("FileFetcher.Fetch: %w", err)
	}
	return data, nil
}

func (f *FileFetcher) Describe() string { return f.Path }
