package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRecords means the crawl produced nothing to transform.
	ErrNoRecords = errors.New("no data was extracted")
	// ErrEmptyTransform means every row was dropped during normalization.
	ErrEmptyTransform = errors.New("data transformation resulted in an empty dataset")
)

// MissingColumnsError reports required columns absent from a batch schema.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// FormatError reports a value that could not be parsed into its column type.
type FormatError struct {
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to process %s column: value %q: %v", e.Column, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// TransformError wraps any failure raised inside the row pipeline.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string {
	return "an error occurred during data transformation: " + e.Err.Error()
}

func (e *TransformError) Unwrap() error { return e.Err }
