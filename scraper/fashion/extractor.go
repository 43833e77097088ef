package fashion

import (
	"fmt"
	"strings"
	"time"

	"fashion-etl/models"
	"fashion-etl/utils"
)

// Selectors locates listing cards, their fields and the pagination link.
type Selectors struct {
	Card     string
	Title    string
	Price    string
	Rating   string
	Colors   string
	Size     string
	Gender   string
	NextPage string
	NextAttr string
}

// DefaultSelectors matches the Fashion Studio catalog markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Card:     "div.collection-card",
		Title:    "h3.product-title",
		Price:    "span.price",
		Rating:   "div.product-details > p:nth-child(3)",
		Colors:   "div.product-details > p:nth-child(4)",
		Size:     "div.product-details > p:nth-child(5)",
		Gender:   "div.product-details > p:nth-child(6)",
		NextPage: "li.page-item.next > a.page-link",
		NextAttr: "href",
	}
}

// Extractor reads listing cards and the next-page link out of one page.
type Extractor struct {
	sel    Selectors
	logger *utils.Logger
	now    func() time.Time
}

// NewExtractor creates an Extractor using the given selectors.
func NewExtractor(sel Selectors, logger *utils.Logger) *Extractor {
	return &Extractor{sel: sel, logger: logger, now: time.Now}
}

// ExtractPage returns every readable card on the page and the absolute URL of
// the next page, or "" on the last page. A broken card is logged and skipped;
// an error is only returned when the page itself cannot be queried.
func (e *Extractor) ExtractPage(doc Document) ([]models.RawRecord, string, error) {
	captured := e.now().Format(time.RFC3339Nano)

	cards, err := doc.Select(e.sel.Card)
	if err != nil {
		e.logger.Error("[extract] Cannot select listing cards: %v", err)
		return nil, "", fmt.Errorf("extract: select cards: %w", err)
	}

	records := make([]models.RawRecord, 0, len(cards))
	for i, card := range cards {
		rec, err := e.extractCard(card)
		if err != nil {
			e.logger.Error("[extract] Skipping card %d: %v", i, err)
			continue
		}
		rec.Timestamp = captured
		records = append(records, rec)
	}

	next, err := e.nextPage(doc)
	if err != nil {
		e.logger.Error("[extract] Cannot read next-page link: %v", err)
		return nil, "", fmt.Errorf("extract: next page: %w", err)
	}

	e.logger.Debug("[extract] %d/%d cards read, next=%q", len(records), len(cards), next)
	return records, next, nil
}

func (e *Extractor) extractCard(card Element) (rec models.RawRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed card: %v", r)
		}
	}()

	fields := []struct {
		selector string
		dst      **string
	}{
		{e.sel.Title, &rec.Title},
		{e.sel.Price, &rec.Price},
		{e.sel.Rating, &rec.Rating},
		{e.sel.Colors, &rec.Colors},
		{e.sel.Size, &rec.Size},
		{e.sel.Gender, &rec.Gender},
	}
	for _, f := range fields {
		v, err := firstText(card, f.selector)
		if err != nil {
			return models.RawRecord{}, err
		}
		*f.dst = v
	}
	return rec, nil
}

func (e *Extractor) nextPage(doc Document) (string, error) {
	links, err := doc.Select(e.sel.NextPage)
	if err != nil {
		return "", err
	}
	for _, link := range links {
		href, ok := link.Attr(e.sel.NextAttr)
		if !ok || strings.TrimSpace(href) == "" {
			continue
		}
		return doc.Resolve(href)
	}
	return "", nil
}

// firstText returns the trimmed text of the first match, or nil when nothing
// matches or the match holds no text.
func firstText(el Element, selector string) (*string, error) {
	found, err := el.Select(selector)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	text := strings.TrimSpace(found[0].Text())
	if text == "" {
		return nil, nil
	}
	return &text, nil
}
