package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fashion-etl/models"
)

type stagedRecord struct {
	Title     *string `json:"Title"`
	Price     *string `json:"Price"`
	Rating    *string `json:"Rating"`
	Colors    *string `json:"Colors"`
	Size      *string `json:"Size"`
	Gender    *string `json:"Gender"`
	Timestamp string  `json:"Timestamp"`
}

// WriteStaging writes raw records as JSON lines, one object per record,
// replacing any previous file. Null fields are kept as JSON null.
func WriteStaging(path string, records []models.RawRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("staging: create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("staging: create file %q: %w", path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(stagedRecord(r)); err != nil {
			_ = f.Close()
			return fmt.Errorf("staging: encode: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("staging: flush: %w", err)
	}
	return f.Close()
}

// ReadStaging reloads a JSON-lines staging file into a batch. The schema is
// taken from the keys present in the file. A line that is not a JSON object of
// strings and nulls fails with models.ErrInputType.
func ReadStaging(path string) (*models.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("staging: read %q: %w", path, err)
	}

	var rows []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var row map[string]any
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("staging: line %d: %v: %w", n, err, models.ErrInputType)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("staging: scan: %w", err)
	}

	batch, err := models.BatchFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("staging: %w", err)
	}
	return batch, nil
}

// Stage writes records to path and reads them back, so the transform stage
// sees exactly what a rerun from the file would see.
func Stage(path string, records []models.RawRecord) (*models.Batch, error) {
	if err := WriteStaging(path, records); err != nil {
		return nil, err
	}
	return ReadStaging(path)
}
