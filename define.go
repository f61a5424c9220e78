package framecheck

import (
	"github.com/apache/arrow-go/v18/arrow"
)

type memberKind uint8

const (
	memberUnknown memberKind = iota
	memberColumn
	memberCheck
	memberMethod
	memberSpecial
	memberAnnotation
	memberExtends
)

// Member is one item of a schema declaration: a column, a quality check,
// a parent-schema reference, or one of the structural member kinds that
// Define recognizes but ignores (methods, special members). Declarations
// hand Define an explicit (name, kind) list; anything else is rejected.
type Member struct {
	kind    memberKind
	name    string
	typ     arrow.DataType
	check   CheckFunc
	parents []*Schema
}

// Col declares a column with the given name and arrow data type.
func Col(name string, typ arrow.DataType) Member {
	return Member{kind: memberColumn, name: name, typ: typ}
}

// Check registers a named, schema-scoped data-quality check. Checks run in
// declaration order, after inherited checks, against datasets that already
// validated against the schema.
func Check(name string, fn CheckFunc) Member {
	return Member{kind: memberCheck, name: name, check: fn}
}

// Extends lists parent schemas. Their columns come first in the child, in
// the order given here; their checks run before the child's own.
func Extends(parents ...*Schema) Member {
	return Member{kind: memberExtends, parents: parents}
}

// Method marks a declaration member that is an ordinary method. Recognized
// and skipped by Define.
func Method(name string) Member {
	return Member{kind: memberMethod, name: name}
}

// Special marks a structural (dunder-like) declaration member. Recognized
// and skipped by Define.
func Special(name string) Member {
	return Member{kind: memberSpecial, name: name}
}

// Annotation marks a member that was declared as a bare type annotation
// with no column value attached. Define rejects these: they almost always
// mean the author forgot to construct the column descriptor.
func Annotation(name string) Member {
	return Member{kind: memberAnnotation, name: name}
}

// Define builds an immutable Schema from an explicit declaration.
//
// Columns merge as an ordered map with overwrite: each parent's columns are
// appended in the order the parents are listed, then the declaration's own
// columns. When a name recurs, the later occurrence's type wins but the
// name keeps its first-seen position. This "last writer wins, first
// position wins" rule is deliberate; a child overriding a parent column's
// type does not move the column.
//
// Declaration hygiene is checked before anything is returned: annotation
// members, columns without a usable type, and members of no recognized
// kind all yield a DefinitionError naming every offender.
func Define(name string, members ...Member) (*Schema, error) {
	if name == "" {
		return nil, &DefinitionError{Reason: "schema name must not be empty"}
	}

	var (
		parents     []*Schema
		annotations []string
		unexpected  []string
		ownColumns  []Column
		ownChecks   []QualityCheck
	)
	for _, m := range members {
		switch m.kind {
		case memberExtends:
			parents = append(parents, m.parents...)
		case memberAnnotation:
			annotations = append(annotations, m.name)
		case memberColumn:
			c, err := NewColumn(m.name, m.typ)
			if err != nil {
				if de, ok := err.(*DefinitionError); ok {
					de.Schema = name
				}
				return nil, err
			}
			ownColumns = append(ownColumns, c)
		case memberCheck:
			ownChecks = append(ownChecks, QualityCheck{Name: m.name, Fn: m.check})
		case memberMethod, memberSpecial:
			// structural members, nothing to harvest
		default:
			unexpected = append(unexpected, m.name)
		}
	}

	if len(annotations) > 0 {
		return nil, &DefinitionError{
			Schema:  name,
			Members: annotations,
			Reason:  "found type annotation members; declare columns by value with Col",
		}
	}
	if len(unexpected) > 0 {
		return nil, &DefinitionError{
			Schema:  name,
			Members: unexpected,
			Reason:  "members are neither columns, checks, nor structural members",
		}
	}

	var (
		columns []Column
		index   = make(map[string]int)
		checks  []QualityCheck
	)
	merge := func(c Column) {
		if i, ok := index[c.Name()]; ok {
			columns[i] = c // type overwritten, position kept
			return
		}
		index[c.Name()] = len(columns)
		columns = append(columns, c)
	}
	for _, p := range parents {
		for _, c := range p.columns {
			merge(c)
		}
		checks = append(checks, p.checks...)
	}
	for _, c := range ownColumns {
		merge(c)
	}
	checks = append(checks, ownChecks...)

	fields := make([]arrow.Field, len(columns))
	for i, c := range columns {
		fields[i] = c.Field()
	}

	return &Schema{
		name:    name,
		columns: columns,
		index:   index,
		checks:  checks,
		engine:  arrow.NewSchema(fields, nil),
	}, nil
}

// MustDefine is Define for package-initialization-time declarations; it
// panics on a malformed declaration.
func MustDefine(name string, members ...Member) *Schema {
	s, err := Define(name, members...)
	if err != nil {
		panic(err)
	}
	return s
}
