package framecheck

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Column is a named, typed column descriptor. It doubles as a column
// selector: String() returns the bare name, so a Column can stand in for
// a plain column-name string.
type Column struct {
	name string
	typ  arrow.DataType
}

// NewColumn builds a column descriptor. The type must be a concrete arrow
// data type; a missing type signals a declaration authored without one.
func NewColumn(name string, typ arrow.DataType) (Column, error) {
	if name == "" {
		return Column{}, &DefinitionError{Reason: "column name must not be empty"}
	}
	if typ == nil {
		return Column{}, &DefinitionError{
			Members: []string{name},
			Reason:  "column type must be an arrow data type",
		}
	}
	return Column{name: name, typ: typ}, nil
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the declared data type.
func (c Column) Type() arrow.DataType { return c.typ }

// String returns the column name, making the descriptor usable wherever a
// column selector string is expected.
func (c Column) String() string { return c.name }

// Field returns the engine-native field for this column. A convenience;
// the Schema remains the source of truth.
func (c Column) Field() arrow.Field {
	return arrow.Field{Name: c.name, Type: c.typ, Nullable: true}
}

// Equal reports name and type equality.
func (c Column) Equal(o Column) bool {
	return c.name == o.name && arrow.TypeEqual(c.typ, o.typ)
}

// GoString helps debugging failed assertions.
func (c Column) GoString() string {
	return fmt.Sprintf("framecheck.Column{%s: %s}", c.name, c.typ)
}
