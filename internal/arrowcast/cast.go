// Package arrowcast implements numeric widening casts over arrow arrays.
package arrowcast

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// IsNumeric reports whether dt belongs to the numeric ladder
// (signed/unsigned integers and floats, including Float16).
func IsNumeric(dt arrow.DataType) bool {
	if dt == nil {
		return false
	}
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

// Upcast casts a numeric array to the numeric type `to`, preserving nulls.
// Integer sources may widen to any integer or float target; float sources
// may only move to float targets (a float to integer cast is lossy and is
// refused). Out-of-range values fail the cast.
func Upcast(mem memory.Allocator, arr arrow.Array, to arrow.DataType) (arrow.Array, error) {
	src := arr.DataType()
	if !IsNumeric(src) {
		return nil, fmt.Errorf("arrowcast: cannot cast non-numeric type %s", src)
	}
	if !IsNumeric(to) {
		return nil, fmt.Errorf("arrowcast: cannot cast to non-numeric type %s", to)
	}
	if arrow.TypeEqual(src, to) {
		arr.Retain()
		return arr, nil
	}

	if isFloat(to.ID()) {
		return castToFloat(mem, arr, to)
	}
	if isFloat(src.ID()) {
		return nil, fmt.Errorf("arrowcast: refusing lossy cast from %s to %s", src, to)
	}
	return castToInteger(mem, arr, to)
}

func isFloat(id arrow.Type) bool {
	return id == arrow.FLOAT16 || id == arrow.FLOAT32 || id == arrow.FLOAT64
}

// floatAt reads any numeric value as float64. Callers must ensure the
// index is valid (non-null).
func floatAt(arr arrow.Array, i int) (float64, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return float64(a.Value(i)), nil
	case *array.Int16:
		return float64(a.Value(i)), nil
	case *array.Int32:
		return float64(a.Value(i)), nil
	case *array.Int64:
		return float64(a.Value(i)), nil
	case *array.Uint8:
		return float64(a.Value(i)), nil
	case *array.Uint16:
		return float64(a.Value(i)), nil
	case *array.Uint32:
		return float64(a.Value(i)), nil
	case *array.Uint64:
		return float64(a.Value(i)), nil
	case *array.Float16:
		return float64(a.Value(i).Float32()), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	}
	return 0, fmt.Errorf("arrowcast: unsupported source array %T", arr)
}

// intAt reads an integer value as int64. Unsigned values above
// math.MaxInt64 fail.
func intAt(arr arrow.Array, i int) (int64, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint64:
		v := a.Value(i)
		if v > 1<<63-1 {
			return 0, fmt.Errorf("arrowcast: value %d overflows int64", v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("arrowcast: unsupported integer source array %T", arr)
}

func castToFloat(mem memory.Allocator, arr arrow.Array, to arrow.DataType) (arrow.Array, error) {
	n := arr.Len()
	switch to.ID() {
	case arrow.FLOAT64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			v, err := floatAt(arr, i)
			if err != nil {
				return nil, err
			}
			b.Append(v)
		}
		return b.NewArray(), nil
	case arrow.FLOAT32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			v, err := floatAt(arr, i)
			if err != nil {
				return nil, err
			}
			b.Append(float32(v))
		}
		return b.NewArray(), nil
	case arrow.FLOAT16:
		b := array.NewFloat16Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			v, err := floatAt(arr, i)
			if err != nil {
				return nil, err
			}
			b.Append(float16.New(float32(v)))
		}
		return b.NewArray(), nil
	}
	return nil, fmt.Errorf("arrowcast: unsupported float target %s", to)
}

func castToInteger(mem memory.Allocator, arr arrow.Array, to arrow.DataType) (arrow.Array, error) {
	n := arr.Len()
	appendValue := func(i int, fn func(int64) error) error {
		v, err := intAt(arr, i)
		if err != nil {
			return err
		}
		return fn(v)
	}
	rangeErr := func(v int64) error {
		return fmt.Errorf("arrowcast: value %d does not fit %s", v, to)
	}
	switch to.ID() {
	case arrow.INT64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			if err := appendValue(i, func(v int64) error { b.Append(v); return nil }); err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.INT32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < -1<<31 || v > 1<<31-1 {
					return rangeErr(v)
				}
				b.Append(int32(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.INT16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < -1<<15 || v > 1<<15-1 {
					return rangeErr(v)
				}
				b.Append(int16(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.INT8:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < -1<<7 || v > 1<<7-1 {
					return rangeErr(v)
				}
				b.Append(int8(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.UINT64:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < 0 {
					return rangeErr(v)
				}
				b.Append(uint64(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.UINT32:
		b := array.NewUint32Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < 0 || v > 1<<32-1 {
					return rangeErr(v)
				}
				b.Append(uint32(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.UINT16:
		b := array.NewUint16Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < 0 || v > 1<<16-1 {
					return rangeErr(v)
				}
				b.Append(uint16(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	case arrow.UINT8:
		b := array.NewUint8Builder(mem)
		defer b.Release()
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				b.AppendNull()
				continue
			}
			err := appendValue(i, func(v int64) error {
				if v < 0 || v > 1<<8-1 {
					return rangeErr(v)
				}
				b.Append(uint8(v))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		return b.NewArray(), nil
	}
	return nil, fmt.Errorf("arrowcast: unsupported integer target %s", to)
}
