package services

import (
	"context"
	"fmt"

	"fashion-etl/models"
	"fashion-etl/storage"
	"fashion-etl/utils"
)

// Crawler produces the raw records of one full catalog walk.
type Crawler interface {
	Crawl(ctx context.Context) ([]models.RawRecord, error)
}

// Loader writes clean records to every sink.
type Loader interface {
	Load(ctx context.Context, records []models.CleanRecord) ([]models.LoadResult, error)
}

// Pipeline sequences extract, transform and load.
type Pipeline struct {
	crawler     Crawler
	normalizer  *Normalizer
	loader      Loader
	summary     *SummaryService
	stagingPath string
	logger      *utils.Logger
}

// NewPipeline wires the stages. An empty stagingPath keeps raw records in memory.
func NewPipeline(crawler Crawler, normalizer *Normalizer, loader Loader, summary *SummaryService, stagingPath string, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		crawler:     crawler,
		normalizer:  normalizer,
		loader:      loader,
		summary:     summary,
		stagingPath: stagingPath,
		logger:      logger,
	}
}

// Extract runs the crawl. A failed crawl or staging step is logged and yields
// an empty batch, never a partial one.
func (p *Pipeline) Extract(ctx context.Context) *models.Batch {
	records, err := p.crawler.Crawl(ctx)
	if err != nil {
		p.logger.Critical("[pipeline] Fatal error in crawler: %v", err)
		return models.NewBatch(nil)
	}

	if p.stagingPath == "" {
		return models.NewBatch(records)
	}

	batch, err := storage.Stage(p.stagingPath, records)
	if err != nil {
		p.logger.Error("[pipeline] Error staging extracted data: %v", err)
		return models.NewBatch(nil)
	}
	p.logger.Info("[pipeline] Staged %d raw records in %s", batch.Len(), p.stagingPath)
	return batch
}

// Run executes the whole pipeline and prints the load summary. Any returned
// error should end the process with a non-zero status.
func (p *Pipeline) Run(ctx context.Context) (*models.LoadReport, error) {
	p.logger.Info("[pipeline] Starting data extraction...")
	batch := p.Extract(ctx)
	if batch.Len() == 0 {
		p.logger.Error("[pipeline] No data was extracted. Exiting...")
		return nil, ErrNoRecords
	}

	p.logger.Info("[pipeline] Transforming %d raw records...", batch.Len())
	clean, err := p.normalizer.Transform(batch)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if len(clean) == 0 {
		p.logger.Error("[pipeline] Data transformation resulted in empty dataset. Exiting...")
		return nil, ErrEmptyTransform
	}
	p.logger.Info("[pipeline] Cleaned %d -> %d records (dropped %d)",
		batch.Len(), len(clean), batch.Len()-len(clean))

	p.logger.Info("[pipeline] Loading data to destinations...")
	results, loadErr := p.loader.Load(ctx, clean)

	report := p.summary.Generate(results)
	p.summary.Print(report)

	if loadErr != nil {
		return report, fmt.Errorf("load: %w", loadErr)
	}
	return report, nil
}
