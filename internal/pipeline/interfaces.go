package pipeline

import (
	"context"
)

// RowSource yields the records of one table. Implementations live in the
// sources package; text-based ones run the delimited-text parser, tabular
// ones (workbooks, query results) build records directly.
type RowSource interface {
	// Records fetches and parses the table. Any error fails the whole load.
	Records(ctx context.Context) ([]Record, error)

	// Describe names the source for logs, e.g. its URI.
	Describe() string
}

// TextFetcher returns the raw delimited text behind a table.
type TextFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	Describe() string
}

// TextSource adapts a TextFetcher into a RowSource using Parse.
type TextSource struct {
	Fetcher TextFetcher
}

// Records implements RowSource.
func (s TextSource) Records(ctx context.Context) ([]Record, error) {
	data, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseRecords(string(data)), nil
}

// Describe implements RowSource.
func (s TextSource) Describe() string {
	return s.Fetcher.Describe()
}

// StaticSource serves fixed text. Handy for tests and for piping a file
// already in memory.
type StaticSource struct {
	Name string
	Text string
}

func (s StaticSource) Records(ctx context.Context) ([]Record, error) {
	return ParseRecords(s.Text), nil
}

func (s StaticSource) Describe() string {
	return s.Name
}

var (
	_ RowSource = TextSource{}
	_ RowSource = StaticSource{}
)
