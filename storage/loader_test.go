package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"fashion-etl/models"
	"fashion-etl/utils"
)

type fakeSink struct {
	name  string
	err   error
	calls int64
	seen  int
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(_ context.Context, records []models.CleanRecord) error {
	atomic.AddInt64(&f.calls, 1)
	f.seen = len(records)
	return f.err
}

func TestLoadRunsEverySinkOnce(t *testing.T) {
	csvSink := &fakeSink{name: "csv"}
	sheetSink := &fakeSink{name: "google_sheets", err: errors.New("sheets returned nothing")}
	pgSink := &fakeSink{name: "postgresql", err: errors.New("connection refused")}

	results, err := NewLoader([]Sink{csvSink, sheetSink, pgSink}, 1, utils.Discard()).
		Load(context.Background(), sampleRecords())
	require.NoError(t, err)

	require.Equal(t, map[string]bool{"csv": true, "google_sheets": false, "postgresql": false}, ResultMap(results))
	require.Equal(t, []string{"csv", "google_sheets", "postgresql"}, []string{results[0].Name, results[1].Name, results[2].Name})
	for _, s := range []*fakeSink{csvSink, sheetSink, pgSink} {
		require.EqualValues(t, 1, s.calls, s.name)
	}
}

func TestLoadContinuesAfterFatal(t *testing.T) {
	first := &fakeSink{name: "google_sheets", err: Fatal(ErrCredentialsNotFound)}
	second := &fakeSink{name: "postgresql"}

	results, err := NewLoader([]Sink{first, second}, 1, utils.Discard()).
		Load(context.Background(), sampleRecords())
	require.ErrorIs(t, err, ErrCredentialsNotFound)
	require.EqualValues(t, 1, second.calls)
	require.Equal(t, map[string]bool{"google_sheets": false, "postgresql": true}, ResultMap(results))
}

func TestLoadConcurrent(t *testing.T) {
	sinks := []*fakeSink{{name: "csv"}, {name: "google_sheets", err: errors.New("x")}, {name: "postgresql"}}

	results, err := NewLoader([]Sink{sinks[0], sinks[1], sinks[2]}, 3, utils.Discard()).
		Load(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.Equal(t, "csv", results[0].Name)
	require.True(t, results[0].OK)
	require.False(t, results[1].OK)
	require.True(t, results[2].OK)
	for _, s := range sinks {
		require.EqualValues(t, 1, s.calls)
		require.Equal(t, 2, s.seen)
	}
}
