package models

import (
	"errors"
	"fmt"
	"time"
)

// Column names shared by the staging file, the CSV header and the database table.
const (
	ColTitle     = "Title"
	ColPrice     = "Price"
	ColRating    = "Rating"
	ColColors    = "Colors"
	ColSize      = "Size"
	ColGender    = "Gender"
	ColTimestamp = "Timestamp"
)

// Columns is the required schema, in output order.
var Columns = []string{ColTitle, ColPrice, ColRating, ColColors, ColSize, ColGender, ColTimestamp}

// ErrInputType is returned when a value handed to the transform stage is not a record batch.
var ErrInputType = errors.New("input must be a structured record batch")

// RawRecord holds one scraped listing exactly as read from the page.
// A nil field means the card had no such element.
type RawRecord struct {
	Title     *string
	Price     *string
	Rating    *string
	Colors    *string
	Size      *string
	Gender    *string
	Timestamp string
}

// Field returns the raw value of the named column.
func (r RawRecord) Field(col string) *string {
	switch col {
	case ColTitle:
		return r.Title
	case ColPrice:
		return r.Price
	case ColRating:
		return r.Rating
	case ColColors:
		return r.Colors
	case ColSize:
		return r.Size
	case ColGender:
		return r.Gender
	case ColTimestamp:
		if r.Timestamp == "" {
			return nil
		}
		ts := r.Timestamp
		return &ts
	}
	return nil
}

// Batch is a structured set of raw records with an explicit schema.
type Batch struct {
	Columns []string
	Records []RawRecord
}

// NewBatch wraps in-memory records in a batch carrying the full schema.
func NewBatch(records []RawRecord) *Batch {
	return &Batch{Columns: append([]string(nil), Columns...), Records: records}
}

// Len reports the number of rows, treating a nil batch as empty.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}

// HasColumn reports whether the schema contains col.
func (b *Batch) HasColumn(col string) bool {
	for _, c := range b.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// BatchFromRows builds a batch from generically decoded rows. The schema is the
// union of keys in first-seen order. Every value must be a string or nil.
func BatchFromRows(rows []map[string]any) (*Batch, error) {
	b := &Batch{Records: make([]RawRecord, 0, len(rows))}
	seen := make(map[string]struct{})

	for i, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("row %d: %w", i, ErrInputType)
		}
		// map order is random; keep the schema stable by walking the known columns first
		for _, col := range Columns {
			if _, ok := row[col]; ok {
				if _, dup := seen[col]; !dup {
					seen[col] = struct{}{}
					b.Columns = append(b.Columns, col)
				}
			}
		}
		for col := range row {
			if _, dup := seen[col]; !dup {
				seen[col] = struct{}{}
				b.Columns = append(b.Columns, col)
			}
		}

		var rec RawRecord
		for col, v := range row {
			var s *string
			switch val := v.(type) {
			case nil:
			case string:
				s = &val
			default:
				return nil, fmt.Errorf("row %d column %q has type %T: %w", i, col, v, ErrInputType)
			}
			switch col {
			case ColTitle:
				rec.Title = s
			case ColPrice:
				rec.Price = s
			case ColRating:
				rec.Rating = s
			case ColColors:
				rec.Colors = s
			case ColSize:
				rec.Size = s
			case ColGender:
				rec.Gender = s
			case ColTimestamp:
				if s != nil {
					rec.Timestamp = *s
				}
			}
		}
		b.Records = append(b.Records, rec)
	}
	return b, nil
}

// CleanRecord is the typed, validated row written to every sink.
type CleanRecord struct {
	Title     string
	Price     float64
	Rating    float64
	Colors    string
	Size      string
	Gender    string
	Timestamp time.Time
}

// TimestampLayout renders timestamps for text sinks.
const TimestampLayout = "2006-01-02 15:04:05.999999"

// Strings renders the record as text cells in Columns order.
func (c CleanRecord) Strings() []string {
	return []string{
		c.Title,
		FormatFloat(c.Price),
		FormatFloat(c.Rating),
		c.Colors,
		c.Size,
		c.Gender,
		c.Timestamp.Format(TimestampLayout),
	}
}

// FormatFloat prints f with the shortest exact representation, always keeping a
// decimal point so that whole numbers read back as floats.
func FormatFloat(f float64) string {
	s := fmt.Sprintf("%v", f)
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'N' || r == 'I' {
			return s
		}
	}
	return s + ".0"
}
