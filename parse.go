package framecheck

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// ParseType converts a type name to its arrow data type.
// Supported names: bool, int8..int64, uint8..uint64, float16, float32,
// float64, string, binary, date32, timestamp (millisecond precision).
func ParseType(name string) (arrow.DataType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool", "boolean":
		return arrow.FixedWidthTypes.Boolean, nil
	case "int8":
		return arrow.PrimitiveTypes.Int8, nil
	case "int16":
		return arrow.PrimitiveTypes.Int16, nil
	case "int32":
		return arrow.PrimitiveTypes.Int32, nil
	case "int64":
		return arrow.PrimitiveTypes.Int64, nil
	case "uint8":
		return arrow.PrimitiveTypes.Uint8, nil
	case "uint16":
		return arrow.PrimitiveTypes.Uint16, nil
	case "uint32":
		return arrow.PrimitiveTypes.Uint32, nil
	case "uint64":
		return arrow.PrimitiveTypes.Uint64, nil
	case "float16":
		return arrow.FixedWidthTypes.Float16, nil
	case "float32":
		return arrow.PrimitiveTypes.Float32, nil
	case "float64":
		return arrow.PrimitiveTypes.Float64, nil
	case "string", "utf8":
		return arrow.BinaryTypes.String, nil
	case "binary":
		return arrow.BinaryTypes.Binary, nil
	case "date32":
		return arrow.FixedWidthTypes.Date32, nil
	case "timestamp", "timestamp_ms":
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	default:
		return nil, fmt.Errorf("framecheck: unsupported column type: %s", name)
	}
}

// ParseColumns converts ordered (name, type-name) pairs into column
// members, preserving pair order. It is the text-facing counterpart of
// Col, used by loaders that read schema declarations.
func ParseColumns(pairs [][2]string) ([]Member, error) {
	members := make([]Member, 0, len(pairs))
	for _, p := range pairs {
		typ, err := ParseType(p[1])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", p[0], err)
		}
		members = append(members, Col(p[0], typ))
	}
	return members, nil
}
