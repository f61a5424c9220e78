package framecheck

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/aretw0/framecheck/pkg/frame"
)

// Schema is an immutable, ordered mapping from column name to declared
// type, plus the ordered list of quality checks registered for it.
// Column order is part of the contract: validation reproduces it exactly.
// A Schema is built once by Define and never mutated afterwards, so it is
// safe to share across goroutines without locking.
type Schema struct {
	name    string
	columns []Column
	index   map[string]int
	checks  []QualityCheck
	engine  *arrow.Schema
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns the declared columns in order. The slice is a copy.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Col looks up a column descriptor by name.
func (s *Schema) Col(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// MustCol is Col for columns known to exist; it panics otherwise. Handy
// inside quality-check closures.
func (s *Schema) MustCol(name string) Column {
	c, ok := s.Col(name)
	if !ok {
		panic(fmt.Sprintf("framecheck: schema %s has no column %s", s.name, name))
	}
	return c
}

// Has reports whether the schema declares the named column.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Arrow returns the engine-native schema. Built once at Define time.
func (s *Schema) Arrow() *arrow.Schema { return s.engine }

// Checks returns the registered quality checks in execution order
// (inherited first, then own). The slice is a copy.
func (s *Schema) Checks() []QualityCheck {
	out := make([]QualityCheck, len(s.checks))
	copy(out, s.checks)
	return out
}

// Equal reports whether two schemas declare the same columns in the same
// order. Check lists are not compared.
func (s *Schema) Equal(o *Schema) bool {
	if s.Len() != o.Len() {
		return false
	}
	for i := range s.columns {
		if !s.columns[i].Equal(o.columns[i]) {
			return false
		}
	}
	return true
}

// Empty produces a zero-row table that conforms to the schema.
func (s *Schema) Empty() *frame.Table {
	cols := make([]arrow.Array, len(s.columns))
	for i, c := range s.columns {
		cols[i] = array.MakeArrayOfNull(memory.DefaultAllocator, c.Type(), 0)
	}
	return frame.New(array.NewRecord(s.engine, cols, 0))
}

// String renders the schema as "name(col: type, ...)".
func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('(')
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", c.Name(), c.Type())
	}
	b.WriteByte(')')
	return b.String()
}

func (s *Schema) describe() string {
	pairs := make([]string, len(s.columns))
	for i, c := range s.columns {
		pairs[i] = fmt.Sprintf("%s: %s", c.Name(), c.Type())
	}
	return "[" + strings.Join(pairs, ", ") + "]"
}

func describeArrow(sch *arrow.Schema) string {
	fields := sch.Fields()
	pairs := make([]string, len(fields))
	for i, f := range fields {
		pairs[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return "[" + strings.Join(pairs, ", ") + "]"
}
