package framecheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/framecheck/pkg/frame"
)

// CheckFunc is the contract for a schema-scoped data-quality check: it
// receives the owning schema and a dataset already validated against it,
// and returns an error on violation. Checks must not retain the table
// beyond the call.
type CheckFunc func(s *Schema, tbl *frame.Table) error

// QualityCheck is a named, registered data-quality check.
type QualityCheck struct {
	Name string
	Fn   CheckFunc
}

// PerformChecks validates the dataset and then runs every registered
// quality check against it, inherited checks first, in registration order.
// The first failing check aborts the rest; there is no partial success.
// A Lazy dataset is materialized internally, scoped to this call, since
// check predicates need row values; the materialized table is returned.
func (s *Schema) PerformChecks(ctx context.Context, df frame.Frame) (*frame.Table, error) {
	validated, err := s.Validate(df)
	if err != nil {
		return nil, err
	}

	var tbl *frame.Table
	switch v := validated.(type) {
	case *frame.Table:
		tbl = v
	case *frame.Lazy:
		tbl, err = v.Collect(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("framecheck: cannot run checks on dataset of type %T", validated)
	}

	for _, c := range s.checks {
		if c.Fn == nil {
			return nil, &CheckContractError{Schema: s.name, Check: c.Name}
		}
		if err := c.Fn(s, tbl); err != nil {
			return nil, fmt.Errorf("quality check %s: %w", c.Name, err)
		}
	}
	return tbl, nil
}

// PrimaryKey fails when any two rows share identical values across the
// given column combination jointly. It checks the combination, not each
// column on its own: repeated values in one column do not violate the key
// as long as the full tuple stays unique. Usable standalone inside custom
// checks.
func PrimaryKey(tbl *frame.Table, columns ...string) error {
	if len(columns) == 0 {
		return errors.New("framecheck: primary key requires at least one column")
	}
	dup, err := frame.Duplicated(tbl, columns)
	if err != nil {
		return err
	}
	if dup {
		return &UniquenessError{Columns: columns}
	}
	return nil
}
