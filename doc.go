/*
Package framecheck guarantees the shape of tabular data before downstream processing proceeds.

Callers declare a named, typed, ordered column set once and get structural validation, best-effort coercion and schema-scoped data-quality checks over Apache Arrow record batches, materialized or deferred.

# Concept

A schema declaration is processed exactly once by Define, which merges inherited schemas, applies declaration hygiene and returns an immutable Schema. Every later operation (Validate, Coerce, PerformChecks) consults that canonical Schema. Column order is part of the contract: a dataset whose columns are merely reordered fails validation with a dedicated error.

# Key Features

  - Ordered, immutable schemas with multiple inheritance (parent columns first, "last writer wins, first position wins" on conflicts).
  - Exact structural validation with aggregated diagnostics: redundant, missing and mistyped columns reported in one error.
  - Best-effort coercion: fill missing columns as typed nulls, drop extras, upcast numeric widths, then validate.
  - Schema-scoped quality checks with a reusable joint-uniqueness primary-key check.
  - Lazy datasets validate and coerce on schema metadata alone; only quality checks materialize rows.

# Usage

	var Events = framecheck.MustDefine("events",
		framecheck.Col("id", arrow.PrimitiveTypes.Int64),
		framecheck.Col("name", arrow.BinaryTypes.String),
		framecheck.Check("id_is_unique", func(s *framecheck.Schema, tbl *frame.Table) error {
			return framecheck.PrimaryKey(tbl, "id")
		}),
	)

	validated, err := Events.Validate(tbl)
	if err != nil {
		// one aggregated report of everything wrong with the shape
	}
	checked, err := Events.PerformChecks(ctx, validated)
*/
package framecheck
