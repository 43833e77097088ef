package storage

import (
	"context"
	"errors"

	"fashion-etl/models"
)

// Sink is a storage destination for clean records.
type Sink interface {
	// Name is the stable key reported in load results, e.g. "csv".
	Name() string
	Write(ctx context.Context, records []models.CleanRecord) error
}

// fatalError marks a sink failure that must stop the pipeline once every sink has run.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as fatal to the pipeline.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err, or anything it wraps, was marked with Fatal.
func IsFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}
