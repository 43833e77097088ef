package fashion

import (
	"context"
	"fmt"
	"time"

	"fashion-etl/models"
	"fashion-etl/utils"
)

// CrawlOptions tunes the page loop.
type CrawlOptions struct {
	// MaxPages stops the crawl after this many pages. Zero means follow the
	// next-page link until it disappears.
	MaxPages int
	// PageDelay is waited between consecutive page requests.
	PageDelay time.Duration
}

// Crawler walks the catalog from the seed page by following next-page links.
type Crawler struct {
	seed      string
	fetcher   Fetcher
	extractor *Extractor
	opts      CrawlOptions
	logger    *utils.Logger
}

// NewCrawler creates a Crawler starting at seed.
func NewCrawler(seed string, fetcher Fetcher, extractor *Extractor, opts CrawlOptions, logger *utils.Logger) *Crawler {
	return &Crawler{
		seed:      seed,
		fetcher:   fetcher,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

type crawlState int

const (
	stateFetching crawlState = iota
	stateDone
)

// Crawl fetches pages until there is no next page and returns every record in
// page order. Any page failure aborts the crawl; no partial result is returned.
func (c *Crawler) Crawl(ctx context.Context) ([]models.RawRecord, error) {
	c.logger.Info("[crawl] Starting at %s", c.seed)

	var records []models.RawRecord
	target := c.seed
	page := 0

	for state := stateFetching; state == stateFetching; {
		page++
		c.logger.Info("[crawl] Page %d: %s", page, target)

		doc, err := c.fetcher.Fetch(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("crawl: page %d: %w", page, err)
		}

		pageRecords, next, err := c.extractor.ExtractPage(doc)
		if err != nil {
			return nil, fmt.Errorf("crawl: page %d (%s): %w", page, target, err)
		}
		records = append(records, pageRecords...)

		c.logger.Info("[crawl] Page %d done, %d records so far", page, len(records))

		switch {
		case next == "":
			state = stateDone
		case c.opts.MaxPages > 0 && page >= c.opts.MaxPages:
			c.logger.Warn("[crawl] Page limit %d reached, stopping before %s", c.opts.MaxPages, next)
			state = stateDone
		default:
			target = next
			if err := utils.Sleep(ctx, c.opts.PageDelay); err != nil {
				return nil, fmt.Errorf("crawl: %w", err)
			}
		}
	}

	c.logger.Info("[crawl] Complete: %d pages, %d raw records", page, len(records))
	return records, nil
}
