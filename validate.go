package framecheck

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/aretw0/framecheck/pkg/frame"
)

// Validate checks that the dataset's runtime schema matches this schema
// exactly: same names, same types, same order. On success the input is
// returned unchanged, proven conformant at this moment. On a Lazy dataset
// only the plan's schema metadata is read; nothing is materialized.
//
// Two failure flavors are distinguished. When the column sets and types
// all match but the order differs, the error says so explicitly: column
// order is part of the contract. Otherwise a single aggregated error
// reports every redundant column, every missing column and every type
// mismatch at once. A runtime name that appears more than once is
// reported as duplicated.
func (s *Schema) Validate(df frame.Frame) (frame.Frame, error) {
	got := df.Schema()
	if s.conforms(got) {
		return df, nil
	}

	if s.orderOnlyMismatch(got) {
		return nil, &MismatchError{
			Schema:    s.name,
			OrderOnly: true,
			Expected:  s.describe(),
			Received:  describeArrow(got),
		}
	}

	gotTypes := make(map[string]arrow.DataType, len(got.Fields()))
	counts := make(map[string]int, len(got.Fields()))
	var duplicated []string
	for _, f := range got.Fields() {
		gotTypes[f.Name] = f.Type
		counts[f.Name]++
		if counts[f.Name] == 2 {
			duplicated = append(duplicated, f.Name)
		}
	}
	sort.Strings(duplicated)

	var redundant []string
	for name := range gotTypes {
		if !s.Has(name) {
			redundant = append(redundant, name)
		}
	}
	sort.Strings(redundant)

	var missing []string
	var mismatches []TypeMismatch
	for _, c := range s.columns {
		actual, ok := gotTypes[c.Name()]
		if !ok {
			missing = append(missing, c.Name())
			continue
		}
		if !arrow.TypeEqual(actual, c.Type()) {
			mismatches = append(mismatches, TypeMismatch{
				Name:     c.Name(),
				Expected: c.Type(),
				Actual:   actual,
			})
		}
	}

	return nil, &MismatchError{
		Schema:         s.name,
		Redundant:      redundant,
		Missing:        missing,
		Duplicated:     duplicated,
		TypeMismatches: mismatches,
	}
}

// conforms reports exact name+type+order equality. Field nullability is
// engine metadata with no counterpart here and is ignored.
func (s *Schema) conforms(got *arrow.Schema) bool {
	fields := got.Fields()
	if len(fields) != len(s.columns) {
		return false
	}
	for i, f := range fields {
		c := s.columns[i]
		if f.Name != c.Name() || !arrow.TypeEqual(f.Type, c.Type()) {
			return false
		}
	}
	return true
}

// orderOnlyMismatch reports whether the runtime schema carries exactly the
// declared columns with the declared types, just in a different order.
func (s *Schema) orderOnlyMismatch(got *arrow.Schema) bool {
	fields := got.Fields()
	if len(fields) != len(s.columns) {
		return false
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		c, ok := s.Col(f.Name)
		if !ok || seen[f.Name] || !arrow.TypeEqual(f.Type, c.Type()) {
			return false
		}
		seen[f.Name] = true
	}
	return true
}
