package fashion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fashion-etl/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	require.Equal(t, "/opt/custom/chrome", findChromeBinary())
}

func TestBrowserFetcherRendersCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a headless browser")
	}
	bin := findChromeBinary()
	if bin == "" {
		t.Skip("no Chrome or Chromium binary found")
	}

	srv, _ := newCatalogServer(t, map[string]string{
		"/":      pageHTML("/page2", "T-shirt 1", "T-shirt 2"),
		"/page2": pageHTML("", "T-shirt 3"),
	})

	f, err := NewBrowserFetcher(bin, "", 30*time.Second, utils.Discard())
	require.NoError(t, err)
	defer f.Close()

	crawler := NewCrawler(srv.URL+"/", f, NewExtractor(DefaultSelectors(), utils.Discard()), CrawlOptions{}, utils.Discard())
	records, err := crawler.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "T-shirt 3", *records[2].Title)
}
