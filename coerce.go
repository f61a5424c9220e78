package framecheck

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/aretw0/framecheck/internal/arrowcast"
	"github.com/aretw0/framecheck/pkg/frame"
)

type coerceConfig struct {
	allowMissing  bool
	upcastNumeric bool
}

// CoerceOption tunes Coerce.
type CoerceOption func(*coerceConfig)

// AllowMissing fills declared columns absent from the dataset with typed
// all-null columns instead of failing validation.
func AllowMissing() CoerceOption {
	return func(c *coerceConfig) { c.allowMissing = true }
}

// KeepNumericWidths disables the default numeric upcast, leaving narrower
// numeric source columns untouched. The final validation then fails if
// any widths differ.
func KeepNumericWidths() CoerceOption {
	return func(c *coerceConfig) { c.upcastNumeric = false }
}

// Coerce aligns the dataset toward the schema and validates the result:
//
//  1. with AllowMissing, declared columns missing from the dataset are
//     added as all-null columns of the declared type;
//  2. the dataset is restricted to declared columns, in declared order;
//     undeclared columns are silently dropped, not reported;
//  3. numeric columns are upcast to their declared numeric type (unless
//     KeepNumericWidths is set);
//  4. the result goes through Validate.
//
// Coercion is best-effort: step 4 can still fail, e.g. a narrower source
// width with KeepNumericWidths, or a non-numeric column of the wrong type.
// On a Lazy dataset the transform is composed onto the plan and the
// result's schema is computed statically; nothing is materialized here.
func (s *Schema) Coerce(df frame.Frame, opts ...CoerceOption) (frame.Frame, error) {
	cfg := coerceConfig{upcastNumeric: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch v := df.(type) {
	case *frame.Table:
		rec, err := s.coerceRecord(v.Record(), cfg)
		if err != nil {
			return nil, err
		}
		return s.Validate(frame.New(rec))
	case *frame.Lazy:
		out := s.coercedSchema(v.Schema(), cfg)
		lz := v.Map(out, func(rec arrow.Record) (arrow.Record, error) {
			return s.coerceRecord(rec, cfg)
		})
		return s.Validate(lz)
	default:
		return nil, fmt.Errorf("framecheck: cannot coerce dataset of type %T", df)
	}
}

// coercedSchema predicts the schema coerceRecord will produce, from input
// schema metadata alone. Keeping the two in sync is what lets Lazy
// coercion validate without materializing.
func (s *Schema) coercedSchema(in *arrow.Schema, cfg coerceConfig) *arrow.Schema {
	var fields []arrow.Field
	for _, c := range s.columns {
		idx := in.FieldIndices(c.Name())
		if len(idx) == 0 {
			if !cfg.allowMissing {
				continue
			}
			fields = append(fields, c.Field())
			continue
		}
		src := in.Field(idx[0]).Type
		typ := src
		if coercesTo(src, c.Type(), cfg) {
			typ = c.Type()
		}
		fields = append(fields, arrow.Field{Name: c.Name(), Type: typ, Nullable: true})
	}
	return arrow.NewSchema(fields, nil)
}

func coercesTo(src, declared arrow.DataType, cfg coerceConfig) bool {
	return cfg.upcastNumeric &&
		arrowcast.IsNumeric(declared) &&
		arrowcast.IsNumeric(src) &&
		!arrow.TypeEqual(src, declared)
}

func (s *Schema) coerceRecord(rec arrow.Record, cfg coerceConfig) (arrow.Record, error) {
	in := rec.Schema()
	mem := memory.DefaultAllocator
	var (
		fields []arrow.Field
		cols   []arrow.Array
	)
	for _, c := range s.columns {
		idx := in.FieldIndices(c.Name())
		if len(idx) == 0 {
			if !cfg.allowMissing {
				continue
			}
			cols = append(cols, array.MakeArrayOfNull(mem, c.Type(), int(rec.NumRows())))
			fields = append(fields, c.Field())
			continue
		}
		col := rec.Column(idx[0])
		src := in.Field(idx[0]).Type
		if coercesTo(src, c.Type(), cfg) {
			cast, err := arrowcast.Upcast(mem, col, c.Type())
			if err != nil {
				return nil, fmt.Errorf("framecheck: coerce column %s: %w", c.Name(), err)
			}
			col = cast
		} else {
			col.Retain()
		}
		cols = append(cols, col)
		fields = append(fields, arrow.Field{Name: c.Name(), Type: col.DataType(), Nullable: true})
	}
	return array.NewRecord(arrow.NewSchema(fields, nil), cols, rec.NumRows()), nil
}
