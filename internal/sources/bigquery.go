package sources

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/dvloznov/bankview/internal/format"
	"github.com/dvloznov/bankview/internal/logger"
	"github.com/dvloznov/bankview/internal/pipeline"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// TableRef addresses a BigQuery table.
type TableRef struct {
	Project string
	Dataset string
	Table   string
}

func (t TableRef) String() string {
	return fmt.Sprintf("bq://%s/%s/%s", t.Project, t.Dataset, t.Table)
}

// ParseBigQueryURI parses bq://project/dataset/table.
func ParseBigQueryURI(uri string) (TableRef, error) {
	rest, ok := strings.CutPrefix(uri, "bq://")
	if !ok {
		return TableRef{}, fmt.Errorf("ParseBigQueryURI: %q is not a bq:// URI", uri)
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return TableRef{}, fmt.Errorf("ParseBigQueryURI: %q must be bq://project/dataset/table", uri)
	}
	return TableRef{Project: parts[0], Dataset: parts[1], Table: parts[2]}, nil
}

// BigQuerySource reads every row of a table and stringifies the values so
// they pass through the same decoder as spreadsheet text.
type BigQuerySource struct {
	Table         TableRef
	Location      string
	ClientOptions []option.ClientOption
}

// Records implements pipeline.RowSource.
func (s *BigQuerySource) Records(ctx context.Context) ([]pipeline.Record, error) {
	client, err := bigquery.NewClient(ctx, s.Table.Project, s.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("BigQuerySource.Records: creating client: %w", err)
	}
	defer client.Close()

	return s.RecordsWithClient(ctx, client)
}

// RecordsWithClient runs the query using the provided client.
func (s *BigQuerySource) RecordsWithClient(ctx context.Context, client *bigquery.Client) ([]pipeline.Record, error) {
	log := logger.FromContext(ctx)

	q := client.Query(fmt.Sprintf("SELECT * FROM `%s.%s.%s`", s.Table.Project, s.Table.Dataset, s.Table.Table))
	if s.Location != "" {
		q.Location = s.Location
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("BigQuerySource.Records: reading query: %w", err)
	}

	var header []string
	var rows [][]string
	for {
		var values []bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("BigQuerySource.Records: iterating: %w", err)
		}
		if header == nil {
			header = schemaNames(it.Schema)
		}
		rows = append(rows, stringifyRow(values))
	}

	log.Debug().Str("source", s.Describe()).Int("rows", len(rows)).Msg("Read BigQuery table")

	if header == nil {
		return []pipeline.Record{}, nil
	}
	return pipeline.RecordsFromRows(header, rows), nil
}

func (s *BigQuerySource) Describe() string { return s.Table.String() }

func schemaNames(schema bigquery.Schema) []string {
	names := make([]string, len(schema))
	for i, f := range schema {
		names[i] = f.Name
	}
	return names
}

func stringifyRow(values []bigquery.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Stringify(v)
	}
	return out
}

// Stringify renders a BigQuery value the way the spreadsheet export would:
// NULL is empty, DATE is dd/mm/yyyy.
func Stringify(v bigquery.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case civil.Date:
		return format.Date(x)
	case time.Time:
		return format.Date(civil.DateOf(x))
	case *big.Rat:
		return strings.TrimRight(strings.TrimRight(x.FloatString(9), "0"), ".")
	default:
		return fmt.Sprint(x)
	}
}
