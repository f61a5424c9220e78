package frame

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// Lazy is a deferred dataset: a known output schema plus a plan that
// produces the record on demand. Schema inspection is metadata-only.
type Lazy struct {
	schema *arrow.Schema
	run    func(ctx context.Context) (arrow.Record, error)
}

// NewLazy builds a deferred dataset from its declared output schema and
// the plan producing its record.
func NewLazy(schema *arrow.Schema, run func(ctx context.Context) (arrow.Record, error)) *Lazy {
	return &Lazy{schema: schema, run: run}
}

// Schema returns the plan's declared output schema without executing it.
func (l *Lazy) Schema() *arrow.Schema {
	return l.schema
}

// Collect executes the plan and materializes the dataset.
func (l *Lazy) Collect(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := l.run(ctx)
	if err != nil {
		return nil, err
	}
	return New(rec), nil
}

// Map composes a record transformation onto the plan. The caller supplies
// the schema the transformed plan will produce.
func (l *Lazy) Map(schema *arrow.Schema, fn func(arrow.Record) (arrow.Record, error)) *Lazy {
	prev := l.run
	return &Lazy{
		schema: schema,
		run: func(ctx context.Context) (arrow.Record, error) {
			rec, err := prev(ctx)
			if err != nil {
				return nil, err
			}
			return fn(rec)
		},
	}
}

// Lazy defers an already materialized table. Collect hands back a new
// reference to the same record.
func (t *Table) Lazy() *Lazy {
	rec := t.rec
	return &Lazy{
		schema: rec.Schema(),
		run: func(ctx context.Context) (arrow.Record, error) {
			rec.Retain()
			return rec, nil
		},
	}
}
