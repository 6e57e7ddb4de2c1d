// Package store provides the dbwriter action node, persisting records into
// Redis lists.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/schema"
)

// keyPrefix namespaces the lists the writer appends to.
const keyPrefix = "orchestron:table:"

// Writer is the dbwriter node. Each record is JSON-encoded and appended to
// the list named by the table parameter.
type Writer struct {
	client *backend.Client
}

// Option configures a Writer.
type Option func(*Writer)

// WithClient injects an existing Redis client, bypassing config-based
// connection setup. Tests pair this with miniredis.
func WithClient(client *backend.Client) Option {
	return func(w *Writer) {
		w.client = client
	}
}

// NewWriter creates the dbwriter node.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Describe implements ports.Node.
func (w *Writer) Describe() domain.Descriptor {
	return domain.Descriptor{
		Name:        "dbwriter",
		Description: "Write records to a database table",
		ConfigKeys:  []string{"addr"},
		Parameters: []domain.ParameterSpec{
			{Name: "emails", Type: domain.TypeList, Description: "Records to insert", Required: true},
			{Name: "table", Type: domain.TypeString, Description: "Destination table name", Default: "emails"},
		},
		Outputs: []string{"status", "count", "table"},
	}
}

// Execute implements ports.Node.
func (w *Writer) Execute(ctx context.Context, params schema.Params, cfg domain.Config) (domain.Result, error) {
	client := w.client
	if client == nil {
		if missing := cfg.Missing(w.Describe().ConfigKeys); len(missing) > 0 {
			return domain.Fail(domain.KindConfig, "missing config: %v (set in config file or ORCHESTRON_DBWRITER_* env)", missing), nil
		}
		client = backend.NewClient(&backend.Options{
			Addr:     cfg.String("addr"),
			Password: cfg.String("password"),
			DB:       cfg.Int("db", 0),
		})
		defer client.Close()
	}

	records := params.List("emails")
	table := params.String("table")

	encoded := make([]any, 0, len(records))
	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return domain.Fail(domain.KindWrite, "record %d is not serializable: %v", i, err), nil
		}
		encoded = append(encoded, string(data))
	}

	if len(encoded) > 0 {
		if err := client.RPush(ctx, keyPrefix+table, encoded...).Err(); err != nil {
			return domain.Fail(domain.KindWrite, "failed to write to %q: %v", table, err), nil
		}
	}

	return domain.Success(map[string]any{
		"status": "success",
		"count":  len(encoded),
		"table":  table,
	}), nil
}

// ReadTable returns the raw JSON rows of a table. Used by tests and
// introspection tooling.
func (w *Writer) ReadTable(ctx context.Context, table string) ([]string, error) {
	if w.client == nil {
		return nil, fmt.Errorf("no injected client")
	}
	return w.client.LRange(ctx, keyPrefix+table, 0, -1).Result()
}
