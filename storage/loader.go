package storage

import (
	"context"
	"errors"
	"fmt"

	"fashion-etl/models"
	"fashion-etl/utils"
)

// Loader writes clean records to every configured sink. Each sink is invoked
// exactly once per Load and its outcome is independent of the others.
type Loader struct {
	sinks       []Sink
	concurrency int
	logger      *utils.Logger
}

// NewLoader creates a Loader. With concurrency > 1 sinks run in parallel on a
// bounded pool; results keep the order of sinks either way.
func NewLoader(sinks []Sink, concurrency int, logger *utils.Logger) *Loader {
	return &Loader{sinks: sinks, concurrency: concurrency, logger: logger}
}

// Load runs every sink and returns one result per sink. The returned error is
// non-nil only when a sink failed fatally; the results are complete regardless.
func (l *Loader) Load(ctx context.Context, records []models.CleanRecord) ([]models.LoadResult, error) {
	results := make([]models.LoadResult, len(l.sinks))

	if l.concurrency > 1 && len(l.sinks) > 1 {
		pool := utils.NewWorkerPool(l.concurrency)
		for i, sink := range l.sinks {
			i, sink := i, sink
			own := append([]models.CleanRecord(nil), records...)
			results[i] = models.LoadResult{Name: sink.Name(), Err: errors.New("sink did not finish")}
			pool.Submit(func() {
				results[i] = l.run(ctx, sink, own)
			})
		}
		for _, p := range pool.Wait() {
			l.logger.Error("[load] %v", p)
		}
	} else {
		for i, sink := range l.sinks {
			results[i] = l.run(ctx, sink, records)
		}
	}

	var fatal []error
	for _, r := range results {
		if IsFatal(r.Err) {
			fatal = append(fatal, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, errors.Join(fatal...)
}

func (l *Loader) run(ctx context.Context, sink Sink, records []models.CleanRecord) models.LoadResult {
	name := sink.Name()
	l.logger.Info("[load] Writing %d records to %s", len(records), name)

	if err := sink.Write(ctx, records); err != nil {
		if IsFatal(err) {
			l.logger.Critical("[load] %s failed fatally: %v", name, err)
		} else {
			l.logger.Error("[load] %s failed: %v", name, err)
		}
		return models.LoadResult{Name: name, OK: false, Err: err}
	}
	return models.LoadResult{Name: name, OK: true}
}

// ResultMap flattens results into name -> success.
func ResultMap(results []models.LoadResult) map[string]bool {
	out := make(map[string]bool, len(results))
	for _, r := range results {
		out[r.Name] = r.OK
	}
	return out
}
