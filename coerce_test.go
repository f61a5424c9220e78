package framecheck_test

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/framecheck"
	"github.com/aretw0/framecheck/pkg/frame"
)

// narrowNumericTable has icol as int16 and fcol as float16, both narrower
// than the declared widths.
func narrowNumericTable(t *testing.T) *frame.Table {
	t.Helper()
	sch := arrow.NewSchema([]arrow.Field{
		field("icol", arrow.PrimitiveTypes.Int16),
		field("fcol", arrow.FixedWidthTypes.Float16),
	}, nil)
	return buildTable(t, sch, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Int16Builder).AppendValues([]int16{1, 2, 3}, nil)
		b.Field(1).(*array.Float16Builder).AppendValues([]float16.Num{
			float16.New(1), float16.New(2), float16.New(3),
		}, nil)
	})
}

func numericSchema(t *testing.T) *framecheck.Schema {
	t.Helper()
	s, err := framecheck.Define("numeric",
		framecheck.Col("icol", arrow.PrimitiveTypes.Int64),
		framecheck.Col("fcol", arrow.PrimitiveTypes.Float64),
	)
	require.NoError(t, err)
	return s
}

func TestCoerce_UpcastNumeric(t *testing.T) {
	s := numericSchema(t)
	tbl := narrowNumericTable(t)

	coerced, err := s.Coerce(tbl)
	require.NoError(t, err)

	out := coerced.(*frame.Table)
	assert.EqualValues(t, 3, out.NumRows())

	icol, err := out.Column("icol")
	require.NoError(t, err)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, icol.DataType()))
	assert.Equal(t, int64(3), icol.(*array.Int64).Value(2))

	fcol, err := out.Column("fcol")
	require.NoError(t, err)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, fcol.DataType()))
	assert.Equal(t, float64(2), fcol.(*array.Float64).Value(1))
}

func TestCoerce_KeepNumericWidthsFails(t *testing.T) {
	s := numericSchema(t)
	tbl := narrowNumericTable(t)

	_, err := s.Coerce(tbl, framecheck.KeepNumericWidths())
	var me *framecheck.MismatchError
	require.ErrorAs(t, err, &me)
	require.Len(t, me.TypeMismatches, 2)
	assert.Contains(t, err.Error(), "column icol should be int64 but is int16")
}

func TestCoerce_ReordersAndDropsExtras(t *testing.T) {
	s := fooBarSchema(t)

	sch := arrow.NewSchema([]arrow.Field{
		field("bar", arrow.PrimitiveTypes.Int8),
		field("foo", arrow.FixedWidthTypes.Boolean),
		field("foobar", arrow.BinaryTypes.String),
	}, nil)
	tbl := buildTable(t, sch, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Int8Builder).AppendValues([]int8{1}, nil)
		b.Field(1).(*array.BooleanBuilder).AppendValues([]bool{false}, nil)
		b.Field(2).(*array.StringBuilder).AppendValues([]string{"a"}, nil)
	})

	coerced, err := s.Coerce(tbl)
	require.NoError(t, err)

	out := coerced.(*frame.Table)
	got := out.Schema()
	require.Equal(t, 2, len(got.Fields()))
	assert.Equal(t, "foo", got.Field(0).Name)
	assert.Equal(t, "bar", got.Field(1).Name)
}

func TestCoerce_AllowMissingFillsTypedNulls(t *testing.T) {
	base := fooBarSchema(t)
	extended, err := framecheck.Define("extended",
		framecheck.Extends(base),
		framecheck.Col("c", arrow.BinaryTypes.String),
	)
	require.NoError(t, err)

	tbl := fooBarTable(t) // has foo and bar, lacks c

	coerced, err := extended.Coerce(tbl, framecheck.AllowMissing())
	require.NoError(t, err)

	out := coerced.(*frame.Table)
	assert.EqualValues(t, tbl.NumRows(), out.NumRows(), "row count is unchanged")

	c, err := out.Column("c")
	require.NoError(t, err)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, c.DataType()))
	assert.Equal(t, c.Len(), c.NullN(), "the filled column is entirely null")
}

func TestCoerce_WithoutAllowMissingFails(t *testing.T) {
	base := fooBarSchema(t)
	extended, err := framecheck.Define("extended",
		framecheck.Extends(base),
		framecheck.Col("c", arrow.BinaryTypes.String),
	)
	require.NoError(t, err)

	_, err = extended.Coerce(fooBarTable(t))
	var me *framecheck.MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, []string{"c"}, me.Missing)
}

func TestCoerce_Lazy(t *testing.T) {
	s := numericSchema(t)
	tbl := narrowNumericTable(t)

	coerced, err := s.Coerce(tbl.Lazy())
	require.NoError(t, err)

	lz, ok := coerced.(*frame.Lazy)
	require.True(t, ok, "coercing a lazy dataset stays lazy")

	// the plan's schema is known before collecting
	assert.True(t, lz.Schema().Equal(s.Arrow()))

	out, err := lz.Collect(context.Background())
	require.NoError(t, err)

	// collect-after-coerce equals coerce-after-collect
	direct, err := s.Coerce(tbl)
	require.NoError(t, err)
	assert.True(t, out.Equal(direct.(*frame.Table)))
}

func TestCoerce_LazySchemaOnly(t *testing.T) {
	s := numericSchema(t)
	in := arrow.NewSchema([]arrow.Field{
		field("icol", arrow.PrimitiveTypes.Int16),
		field("fcol", arrow.FixedWidthTypes.Float16),
	}, nil)
	lz := frame.NewLazy(in, func(ctx context.Context) (arrow.Record, error) {
		t.Fatal("coercion must not execute the plan")
		return nil, nil
	})

	_, err := s.Coerce(lz)
	require.NoError(t, err)
}
