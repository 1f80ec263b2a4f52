package sources

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSFetcher reads a Cloud Storage object. Without ClientOptions it relies on
// Application Default Credentials.
type GCSFetcher struct {
	Bucket        string
	Object        string
	Timeout       time.Duration
	ClientOptions []option.ClientOption
}

// Fetch downloads the whole object.
func (f *GCSFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	client, err := storage.NewClient(ctx, f.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("GCSFetcher.Fetch: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(f.Bucket).Object(f.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCSFetcher.Fetch: open object reader %s: %w", f.Describe(), err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("GCSFetcher.Fetch: read object %s: %w", f.Describe(), err)
	}
	return data, nil
}

func (f *GCSFetcher) Describe() string {
	return "gs://" + f.Bucket + "/" + f.Object
}

// ParseGCSURI splits gs://bucket/path/to/object into bucket and object.
// A trailing #fragment is ignored.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("ParseGCSURI: %q is not a gs:// URI", uri)
	}
	rest, _, _ = strings.Cut(rest, "#")

	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("ParseGCSURI: %q needs both bucket and object", uri)
	}
	return bucket, object, nil
}
