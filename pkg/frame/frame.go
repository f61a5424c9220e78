// Package frame provides thin handles over Apache Arrow record batches.
//
// A dataset is either materialized (Table) or deferred (Lazy). Both expose
// their ordered column schema without touching row data, which is what the
// structural validation in the root package relies on: inspecting a Lazy
// dataset never executes its plan.
package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Frame is any dataset whose ordered column schema can be inspected.
// Implemented by Table and Lazy.
type Frame interface {
	Schema() *arrow.Schema
}

// Table wraps a materialized arrow record batch.
type Table struct {
	rec arrow.Record
}

// New wraps rec in a Table. The table takes over the caller's reference.
func New(rec arrow.Record) *Table {
	return &Table{rec: rec}
}

// FromRecord wraps rec in a Table with its own reference, leaving the
// caller's reference intact.
func FromRecord(rec arrow.Record) *Table {
	rec.Retain()
	return &Table{rec: rec}
}

// TableOf builds a materialized table for the given schema by running
// fill against a fresh record builder.
func TableOf(sch *arrow.Schema, fill func(b *array.RecordBuilder)) *Table {
	b := array.NewRecordBuilder(memory.DefaultAllocator, sch)
	defer b.Release()
	fill(b)
	return New(b.NewRecord())
}

// Schema returns the ordered column schema.
func (t *Table) Schema() *arrow.Schema {
	return t.rec.Schema()
}

// Record exposes the underlying arrow record.
func (t *Table) Record() arrow.Record {
	return t.rec
}

// NumRows returns the row count.
func (t *Table) NumRows() int64 {
	return t.rec.NumRows()
}

// Release drops the table's reference to the underlying record.
func (t *Table) Release() {
	t.rec.Release()
}

// Column returns the array backing the named column.
func (t *Table) Column(name string) (arrow.Array, error) {
	idx := t.rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("frame: column %s not found", name)
	}
	return t.rec.Column(idx[0]), nil
}

// Select returns a new table restricted to the named columns, in the
// given order.
func (t *Table) Select(names ...string) (*Table, error) {
	sch := t.rec.Schema()
	fields := make([]arrow.Field, 0, len(names))
	cols := make([]arrow.Array, 0, len(names))
	for _, name := range names {
		idx := sch.FieldIndices(name)
		if len(idx) == 0 {
			return nil, fmt.Errorf("frame: column %s not found", name)
		}
		col := t.rec.Column(idx[0])
		col.Retain()
		fields = append(fields, sch.Field(idx[0]))
		cols = append(cols, col)
	}
	rec := array.NewRecord(arrow.NewSchema(fields, nil), cols, t.rec.NumRows())
	return New(rec), nil
}

// Equal reports record equality (schema and values).
func (t *Table) Equal(o *Table) bool {
	return array.RecordEqual(t.rec, o.rec)
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows, %d cols)", t.rec.NumRows(), t.rec.NumCols())
}
