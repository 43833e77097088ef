package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fashion-etl/models"
)

// DefaultExchangeRate converts catalog dollars to rupiah.
const DefaultExchangeRate = 16000

var (
	errNoRating      = errors.New("no numeric rating token")
	errNegativePrice = errors.New("negative price")
	errNotFinite     = errors.New("not a finite number")
)

// timestampLayouts are tried in order when parsing the capture time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Normalizer turns raw scraped rows into typed clean records. It holds no
// mutable state; Transform is deterministic for a given batch.
type Normalizer struct {
	exchangeRate float64
}

// NewNormalizer creates a Normalizer converting prices with exchangeRate.
func NewNormalizer(exchangeRate float64) *Normalizer {
	return &Normalizer{exchangeRate: exchangeRate}
}

// row is the working copy of one record while it moves through the pipeline.
// A nil field is either null in the source or marked for removal.
type row struct {
	title, price, rating, colors, size, gender, timestamp *string
}

// Transform cleans batch. A nil batch yields an empty result.
func (n *Normalizer) Transform(batch *models.Batch) ([]models.CleanRecord, error) {
	if batch == nil {
		return []models.CleanRecord{}, nil
	}

	var missing []string
	for _, col := range models.Columns {
		if !batch.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	rows := make([]row, len(batch.Records))
	for i, rec := range batch.Records {
		rows[i] = markRow(rec)
	}

	out := make([]models.CleanRecord, 0, len(rows))
	for _, r := range rows {
		if !r.complete() {
			continue
		}
		clean, ok, err := n.convert(r)
		if err != nil {
			return nil, &TransformError{Err: err}
		}
		if ok {
			out = append(out, clean)
		}
	}
	return out, nil
}

// markRow lower-cases the text columns and nils out sentinel values.
func markRow(rec models.RawRecord) row {
	r := row{
		title:     lower(rec.Field(models.ColTitle)),
		rating:    lower(rec.Field(models.ColRating)),
		price:     lower(rec.Field(models.ColPrice)),
		colors:    rec.Field(models.ColColors),
		size:      rec.Field(models.ColSize),
		gender:    rec.Field(models.ColGender),
		timestamp: rec.Field(models.ColTimestamp),
	}
	if containsAny(r.title, "unknown") {
		r.title = nil
	}
	if containsAny(r.rating, "invalid", "not") {
		r.rating = nil
	}
	if containsAny(r.price, "unavailable") {
		r.price = nil
	}
	return r
}

func (r row) complete() bool {
	for _, f := range []*string{r.title, r.price, r.rating, r.colors, r.size, r.gender, r.timestamp} {
		if f == nil {
			return false
		}
	}
	return true
}

// convert types a complete row. ok is false when a positional token is absent,
// in which case the row is dropped like any other incomplete row.
func (n *Normalizer) convert(r row) (models.CleanRecord, bool, error) {
	rating, err := parseRating(*r.rating)
	if err != nil {
		return models.CleanRecord{}, false, &FormatError{Column: models.ColRating, Value: *r.rating, Err: err}
	}

	price, err := parsePrice(*r.price)
	if err != nil {
		return models.CleanRecord{}, false, &FormatError{Column: models.ColPrice, Value: *r.price, Err: err}
	}

	colors, ok1 := token(*r.colors, 0)
	size, ok2 := token(*r.size, 1)
	gender, ok3 := token(*r.gender, 1)

	ts, err := parseTimestamp(*r.timestamp)
	if err != nil {
		return models.CleanRecord{}, false, &FormatError{Column: models.ColTimestamp, Value: *r.timestamp, Err: err}
	}

	if !ok1 || !ok2 || !ok3 {
		return models.CleanRecord{}, false, nil
	}

	return models.CleanRecord{
		Title:     *r.title,
		Price:     price * n.exchangeRate,
		Rating:    rating,
		Colors:    colors,
		Size:      size,
		Gender:    gender,
		Timestamp: ts,
	}, true, nil
}

// parseRating reads the third whitespace token, e.g. "rating: ⭐ 4.8 / 5" -> 4.8.
// Short decorated forms such as "-- 4.5 --" put the number earlier, so when the
// third token is not a number the first numeric token is used instead.
func parseRating(s string) (float64, error) {
	if tok, ok := token(s, 2); ok {
		if v, err := parseFinite(tok); err == nil {
			return v, nil
		}
	}
	for _, tok := range strings.Fields(s) {
		if v, err := parseFinite(tok); err == nil {
			return v, nil
		}
	}
	return 0, errNoRating
}

// parsePrice strips the dollar sign and parses the remainder.
func parsePrice(s string) (float64, error) {
	v, err := parseFinite(strings.TrimSpace(strings.ReplaceAll(s, "$", "")))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errNegativePrice
	}
	return v, nil
}

// parseFinite is strconv.ParseFloat without the NaN and infinity spellings.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp: %w", firstErr)
}

func token(s string, i int) (string, bool) {
	fields := strings.Fields(s)
	if i >= len(fields) {
		return "", false
	}
	return fields[i], true
}

func lower(s *string) *string {
	if s == nil {
		return nil
	}
	l := strings.ToLower(*s)
	return &l
}

func containsAny(s *string, subs ...string) bool {
	if s == nil {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(*s, sub) {
			return true
		}
	}
	return false
}
