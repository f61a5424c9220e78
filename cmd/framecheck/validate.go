package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/spf13/cobra"

	"github.com/aretw0/framecheck"
	"github.com/aretw0/framecheck/pkg/frame"
	"github.com/aretw0/framecheck/pkg/schemafile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema.yaml> <data.csv>",
	Short: "Check a CSV dataset against a schema declaration",
	Long:  `Reads a schema declaration from YAML and a dataset from CSV, then reports every structural mismatch (redundant, missing and mistyped columns) in one pass. With --coerce the dataset is first aligned toward the schema.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Dataset is valid! ✅")
	},
}

func init() {
	validateCmd.Flags().Bool("coerce", false, "Coerce the dataset toward the schema before validating")
	validateCmd.Flags().Bool("allow-missing", false, "Fill missing declared columns with typed nulls (implies --coerce)")
	validateCmd.Flags().Bool("keep-widths", false, "Do not upcast numeric columns during coercion")
	validateCmd.Flags().Bool("checks", false, "Run registered data-quality checks after validation")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)

	schema, err := schemafile.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug("schema loaded", "schema", schema.Name(), "columns", schema.Len(), "checks", len(schema.Checks()))

	tbl, err := readCSV(args[1])
	if err != nil {
		return err
	}
	defer tbl.Release()
	log.Debug("dataset loaded", "rows", tbl.NumRows())

	coerce, _ := cmd.Flags().GetBool("coerce")
	allowMissing, _ := cmd.Flags().GetBool("allow-missing")
	keepWidths, _ := cmd.Flags().GetBool("keep-widths")
	runChecks, _ := cmd.Flags().GetBool("checks")

	var df frame.Frame = tbl
	if coerce || allowMissing {
		var opts []framecheck.CoerceOption
		if allowMissing {
			opts = append(opts, framecheck.AllowMissing())
		}
		if keepWidths {
			opts = append(opts, framecheck.KeepNumericWidths())
		}
		df, err = schema.Coerce(tbl, opts...)
	} else {
		df, err = schema.Validate(df)
	}
	if err != nil {
		return err
	}

	if runChecks {
		if _, err := schema.PerformChecks(cmd.Context(), df); err != nil {
			return err
		}
		log.Debug("quality checks passed", "count", len(schema.Checks()))
	}
	return nil
}

// readCSV loads the whole file as one record batch, inferring column
// types from the data.
func readCSV(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewInferringReader(f, csv.WithHeader(true), csv.WithChunk(-1))
	defer rdr.Release()
	if !rdr.Next() {
		if err := rdr.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("dataset is empty")
	}
	rec := rdr.Record()
	rec.Retain()
	return frame.New(rec), nil
}
