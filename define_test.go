package framecheck

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine_ColumnOrder(t *testing.T) {
	s, err := Define("pair",
		Col("foo", arrow.FixedWidthTypes.Boolean),
		Col("bar", arrow.PrimitiveTypes.Int8),
	)
	require.NoError(t, err)

	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "foo", cols[0].Name())
	assert.Equal(t, "bar", cols[1].Name())
	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Boolean, cols[0].Type()))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int8, cols[1].Type()))

	reversed, err := Define("reversed",
		Col("bar", arrow.PrimitiveTypes.Int8),
		Col("foo", arrow.FixedWidthTypes.Boolean),
	)
	require.NoError(t, err)
	assert.False(t, s.Equal(reversed), "declaration order must be part of schema identity")
}

func TestDefine_Inheritance(t *testing.T) {
	base, err := Define("base",
		Col("foo", arrow.FixedWidthTypes.Boolean),
		Col("bar", arrow.PrimitiveTypes.Int8),
	)
	require.NoError(t, err)
	other, err := Define("other",
		Col("baz", arrow.BinaryTypes.String),
	)
	require.NoError(t, err)

	t.Run("single parent columns come first", func(t *testing.T) {
		child, err := Define("child",
			Extends(base),
			Col("baz", arrow.BinaryTypes.String),
		)
		require.NoError(t, err)
		names := columnNames(child)
		assert.Equal(t, []string{"foo", "bar", "baz"}, names)
	})

	t.Run("multiple parents in listed order", func(t *testing.T) {
		child, err := Define("child",
			Extends(base, other),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar", "baz"}, columnNames(child))
	})

	t.Run("two inheritance levels", func(t *testing.T) {
		mid, err := Define("mid",
			Extends(base),
			Col("baz", arrow.BinaryTypes.String),
		)
		require.NoError(t, err)
		child, err := Define("leaf",
			Extends(mid),
			Col("boo", arrow.FixedWidthTypes.Boolean),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar", "baz", "boo"}, columnNames(child))
	})
}

func TestDefine_ConflictKeepsFirstPositionLastType(t *testing.T) {
	base, err := Define("base",
		Col("a", arrow.PrimitiveTypes.Int64),
		Col("b", arrow.BinaryTypes.String),
	)
	require.NoError(t, err)

	child, err := Define("child",
		Extends(base),
		Col("a", arrow.PrimitiveTypes.Float64),
		Col("c", arrow.FixedWidthTypes.Boolean),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, columnNames(child))
	a, ok := child.Col("a")
	require.True(t, ok)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, a.Type()),
		"the later declaration's type wins")
}

func TestDefine_CheckOrdering(t *testing.T) {
	parent, err := Define("parent",
		Col("a", arrow.PrimitiveTypes.Int64),
		Check("parent_check", nil),
	)
	require.NoError(t, err)

	child, err := Define("child",
		Extends(parent),
		Col("b", arrow.BinaryTypes.String),
		Check("child_check", nil),
	)
	require.NoError(t, err)

	checks := child.Checks()
	require.Len(t, checks, 2)
	assert.Equal(t, "parent_check", checks[0].Name)
	assert.Equal(t, "child_check", checks[1].Name)
}

func TestDefine_Hygiene(t *testing.T) {
	t.Run("annotation member rejected", func(t *testing.T) {
		_, err := Define("bad",
			Col("ok", arrow.PrimitiveTypes.Int64),
			Annotation("foo"),
		)
		var de *DefinitionError
		require.ErrorAs(t, err, &de)
		assert.Contains(t, de.Error(), "type annotation")
		assert.Contains(t, de.Members, "foo")
	})

	t.Run("unexpected members enumerated", func(t *testing.T) {
		_, err := Define("bad",
			Col("ok", arrow.PrimitiveTypes.Int64),
			Member{name: "gotcha"},
			Member{name: "other"},
		)
		var de *DefinitionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, []string{"gotcha", "other"}, de.Members)
	})

	t.Run("column without a type rejected", func(t *testing.T) {
		_, err := Define("bad",
			Col("foo", nil),
		)
		var de *DefinitionError
		require.ErrorAs(t, err, &de)
		assert.Contains(t, de.Members, "foo")
		assert.Equal(t, "bad", de.Schema)
	})

	t.Run("empty schema name rejected", func(t *testing.T) {
		_, err := Define("")
		var de *DefinitionError
		require.ErrorAs(t, err, &de)
	})

	t.Run("recognized structural members skipped", func(t *testing.T) {
		s, err := Define("ok",
			Col("a", arrow.PrimitiveTypes.Int64),
			Method("helper"),
			Special("__doc__"),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})
}

func TestColumn_SelectorBehavior(t *testing.T) {
	c, err := NewColumn("foo", arrow.FixedWidthTypes.Boolean)
	require.NoError(t, err)
	assert.Equal(t, "foo", c.String())
	assert.Equal(t, "foo", c.Name())
	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Boolean, c.Type()))

	f := c.Field()
	assert.Equal(t, "foo", f.Name)
	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Boolean, f.Type))
}

func columnNames(s *Schema) []string {
	cols := s.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return names
}
