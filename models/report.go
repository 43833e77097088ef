package models

// LoadResult is the outcome of one sink.
type LoadResult struct {
	Name string
	OK   bool
	Err  error
}

// LoadReport summarises a load run across all sinks.
type LoadReport struct {
	Results     []LoadResult
	Total       int
	Succeeded   int
	Failed      int
	SuccessRate float64
}
