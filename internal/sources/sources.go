// Package sources opens the row sources behind the three tables. A source is
// picked by URI scheme; byte-oriented sources (HTTP, GCS, local file) are
// parsed as delimited text unless they carry an XLSX workbook.
package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dvloznov/bankview/internal/pipeline"
	"google.golang.org/api/option"
)

var (
	// ErrBadStatus is returned when an HTTP source answers outside 2xx.
	ErrBadStatus = errors.New("unexpected status")

	// ErrUnsupportedScheme is returned by Open for URIs it cannot serve.
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
)

// Options tune how sources reach their backends.
type Options struct {
	// HTTPClient is used for http(s) sources. Defaults to a client with Timeout.
	HTTPClient *http.Client

	// Timeout bounds a single fetch. Zero means no timeout beyond the caller's context.
	Timeout time.Duration

	// CredentialsFile, when set, is passed to the GCS and BigQuery clients.
	CredentialsFile string

	// BigQueryLocation sets the query job location for bq:// sources.
	BigQueryLocation string
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.Timeout}
}

func (o Options) clientOptions() []option.ClientOption {
	if o.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(o.CredentialsFile)}
}

// Open returns the RowSource for uri:
//
//	http://..., https://...      GET
//	gs://bucket/object           Cloud Storage object
//	file:///path, /path, ./path  local file
//	bq://project/dataset/table   BigQuery table
//
// Byte sources ending in .xlsx, or whose content starts with a ZIP header,
// are read as workbooks; the URI fragment picks the sheet.
func Open(ctx context.Context, uri string, opts Options) (pipeline.RowSource, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("Open: empty source URI")
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("Open: parsing %q: %w", uri, err)
	}

	var fetcher pipeline.TextFetcher
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		fetcher = &HTTPFetcher{URL: withoutFragment(u), Client: opts.httpClient()}
	case "gs":
		bucket, object, err := ParseGCSURI(uri)
		if err != nil {
			return nil, fmt.Errorf("Open: %w", err)
		}
		fetcher = &GCSFetcher{Bucket: bucket, Object: object, Timeout: opts.Timeout, ClientOptions: opts.clientOptions()}
	case "file":
		fetcher = &FileFetcher{Path: u.Path}
	case "":
		fetcher = &FileFetcher{Path: u.Path}
	case "bq":
		table, err := ParseBigQueryURI(uri)
		if err != nil {
			return nil, fmt.Errorf("Open: %w", err)
		}
		return &BigQuerySource{Table: table, Location: opts.BigQueryLocation, ClientOptions: opts.clientOptions()}, nil
	default:
		return nil, fmt.Errorf("Open: %q: %w", u.Scheme, ErrUnsupportedScheme)
	}

	return &BytesSource{
		Fetcher:  fetcher,
		Sheet:    u.Fragment,
		Workbook: strings.EqualFold(path.Ext(u.Path), ".xlsx"),
	}, nil
}

// OpenAll opens the three table sources.
func OpenAll(ctx context.Context, clientsURI, accountsURI, branchesURI string, opts Options) (pipeline.Sources, error) {
	clients, err := Open(ctx, clientsURI, opts)
	if err != nil {
		return pipeline.Sources{}, fmt.Errorf("OpenAll: %s: %w", pipeline.TableClients, err)
	}
	accounts, err := Open(ctx, accountsURI, opts)
	if err != nil {
		return pipeline.Sources{}, fmt.Errorf("OpenAll: %s: %w", pipeline.TableAccounts, err)
	}
	branches, err := Open(ctx, branchesURI, opts)
	if err != nil {
		return pipeline.Sources{}, fmt.Errorf("OpenAll: %s: %w", pipeline.TableBranches, err)
	}
	return pipeline.Sources{Clients: clients, Accounts: accounts, Branches: branches}, nil
}

// BytesSource turns fetched bytes into records, choosing between the
// delimited-text parser and the workbook reader.
type BytesSource struct {
	Fetcher pipeline.TextFetcher

	// Sheet names the workbook sheet to read; empty means the first sheet.
	Sheet string

	// Workbook forces workbook decoding regardless of content.
	Workbook bool
}

// Records implements pipeline.RowSource.
func (s *BytesSource) Records(ctx context.Context) ([]pipeline.Record, error) {
	data, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if s.Workbook || IsWorkbook(data) {
		return WorkbookRecords(data, s.Sheet)
	}
	return pipeline.ParseRecords(string(data)), nil
}

// Describe implements pipeline.RowSource.
func (s *BytesSource) Describe() string {
	if s.Sheet != "" {
		return s.Fetcher.Describe() + "#" + s.Sheet
	}
	return s.Fetcher.Describe()
}

func withoutFragment(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

var (
	_ pipeline.RowSource   = (*BytesSource)(nil)
	_ pipeline.RowSource   = (*BigQuerySource)(nil)
	_ pipeline.TextFetcher = (*HTTPFetcher)(nil)
	_ pipeline.TextFetcher = (*GCSFetcher)(nil)
	_ pipeline.TextFetcher = (*FileFetcher)(nil)
)
