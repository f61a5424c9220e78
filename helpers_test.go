package framecheck_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/aretw0/framecheck"
	"github.com/aretw0/framecheck/pkg/frame"
)

func field(name string, typ arrow.DataType) arrow.Field {
	return arrow.Field{Name: name, Type: typ, Nullable: true}
}

func buildTable(t *testing.T, sch *arrow.Schema, fill func(b *array.RecordBuilder)) *frame.Table {
	t.Helper()
	return frame.TableOf(sch, fill)
}

// fooBarSchema mirrors the smallest declaration used throughout: a bool
// column followed by a narrow int column.
func fooBarSchema(t *testing.T) *framecheck.Schema {
	t.Helper()
	s, err := framecheck.Define("foo_bar",
		framecheck.Col("foo", arrow.FixedWidthTypes.Boolean),
		framecheck.Col("bar", arrow.PrimitiveTypes.Int8),
	)
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	return s
}

func fooBarTable(t *testing.T) *frame.Table {
	t.Helper()
	sch := arrow.NewSchema([]arrow.Field{
		field("foo", arrow.FixedWidthTypes.Boolean),
		field("bar", arrow.PrimitiveTypes.Int8),
	}, nil)
	return buildTable(t, sch, func(b *array.RecordBuilder) {
		b.Field(0).(*array.BooleanBuilder).AppendValues([]bool{false}, nil)
		b.Field(1).(*array.Int8Builder).AppendValues([]int8{1}, nil)
	})
}
