package framecheck

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// DefinitionError reports a malformed schema declaration. It is returned
// once, by Define, and never from later validate/coerce/check calls.
type DefinitionError struct {
	Schema  string   // schema name, if known
	Members []string // offending member names, if any
	Reason  string
}

func (e *DefinitionError) Error() string {
	var b strings.Builder
	if e.Schema != "" {
		fmt.Fprintf(&b, "invalid schema %s: %s", e.Schema, e.Reason)
	} else {
		fmt.Fprintf(&b, "invalid schema declaration: %s", e.Reason)
	}
	if len(e.Members) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Members, ", "))
	}
	return b.String()
}

// TypeMismatch describes a single column whose runtime type differs from
// the declared one.
type TypeMismatch struct {
	Name     string
	Expected arrow.DataType
	Actual   arrow.DataType
}

func (m TypeMismatch) String() string {
	return fmt.Sprintf("column %s should be %s but is %s", m.Name, m.Expected, m.Actual)
}

// MismatchError reports a structural schema mismatch. It comes in two
// flavors: OrderOnly (names and types all match, only the column order
// differs) and the aggregated redundant/missing/type report. The message
// wording is contract; callers assert on its substrings.
type MismatchError struct {
	Schema    string
	OrderOnly bool
	Expected  string // rendered expected column list (order flavor)
	Received  string // rendered runtime column list (order flavor)

	Redundant      []string // runtime columns not declared
	Missing        []string // declared columns absent at runtime
	Duplicated     []string // runtime column names appearing more than once
	TypeMismatches []TypeMismatch
}

func (e *MismatchError) Error() string {
	if e.OrderOnly {
		return fmt.Sprintf(
			"schema validation failed for %s: the column order is incorrect\nexpected: %s\nreceived: %s",
			e.Schema, e.Expected, e.Received)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "schema validation failed for %s\n", e.Schema)
	fmt.Fprintf(&b, "redundant columns: [%s]\n", strings.Join(e.Redundant, ", "))
	fmt.Fprintf(&b, "missing columns: [%s]\n", strings.Join(e.Missing, ", "))
	if len(e.Duplicated) > 0 {
		fmt.Fprintf(&b, "duplicated columns: [%s]\n", strings.Join(e.Duplicated, ", "))
	}
	b.WriteString("columns with incorrect types:")
	for _, m := range e.TypeMismatches {
		b.WriteByte('\n')
		b.WriteString(m.String())
	}
	return b.String()
}

// UniquenessError reports a violated primary-key combination.
type UniquenessError struct {
	Columns []string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("combination of columns (%s) must be unique", strings.Join(e.Columns, ", "))
}

// CheckContractError reports a quality check that was registered without
// the required schema-scoped function contract. It surfaces when the check
// is executed, not when the schema is defined.
type CheckContractError struct {
	Schema string
	Check  string
}

func (e *CheckContractError) Error() string {
	return fmt.Sprintf("quality check %s on schema %s is not a schema-scoped function", e.Check, e.Schema)
}
