package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"fashion-etl/models"
	"fashion-etl/utils"
)

// ErrCredentialsNotFound means the service-account file does not exist. It is
// always returned marked Fatal.
var ErrCredentialsNotFound = errors.New("service account file not found")

// SheetsConfig locates the target spreadsheet and the credentials used to reach it.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	Range           string
}

// valuesUpdater is the slice of the Sheets API the uploader needs.
type valuesUpdater interface {
	Update(ctx context.Context, spreadsheetID, rng string, vr *sheets.ValueRange) (*sheets.UpdateValuesResponse, error)
}

type newUpdaterFunc func(ctx context.Context, credentialsJSON []byte) (valuesUpdater, error)

// SheetsWriter uploads clean records into a fixed range of a spreadsheet.
type SheetsWriter struct {
	cfg        SheetsConfig
	logger     *utils.Logger
	newUpdater newUpdaterFunc
}

// NewSheetsWriter creates a writer backed by the Google Sheets v4 API.
func NewSheetsWriter(cfg SheetsConfig, logger *utils.Logger) *SheetsWriter {
	return &SheetsWriter{cfg: cfg, logger: logger, newUpdater: newGoogleUpdater}
}

// Name identifies the sink in load results.
func (s *SheetsWriter) Name() string { return "google_sheets" }

// Write uploads records and fails when the upload produced no response.
func (s *SheetsWriter) Write(ctx context.Context, records []models.CleanRecord) error {
	res, err := s.Upload(ctx, records)
	if err != nil {
		return err
	}
	if res == nil {
		return errors.New("sheets: upload returned no result")
	}
	return nil
}

// Upload writes records (values only, no header, every cell as text) and
// returns the API response. A missing credentials file is returned as a fatal
// error; every other failure is logged and reported as a nil response.
func (s *SheetsWriter) Upload(ctx context.Context, records []models.CleanRecord) (*sheets.UpdateValuesResponse, error) {
	creds, err := os.ReadFile(s.cfg.CredentialsFile)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("[sheets] Service account file not found: %s", s.cfg.CredentialsFile)
		return nil, Fatal(fmt.Errorf("sheets: %w: %s", ErrCredentialsNotFound, s.cfg.CredentialsFile))
	}
	if err != nil {
		s.logger.Error("[sheets] Cannot read service account file: %v", err)
		return nil, nil
	}

	updater, err := s.newUpdater(ctx, creds)
	if err != nil {
		s.logger.Error("[sheets] Error creating Sheets client: %v", err)
		return nil, nil
	}

	values := make([][]interface{}, 0, len(records))
	for _, r := range records {
		cells := r.Strings()
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		values = append(values, row)
	}

	res, err := updater.Update(ctx, s.cfg.SpreadsheetID, s.cfg.Range, &sheets.ValueRange{Values: values})
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			s.logger.Error("[sheets] Google Sheets API error: %v", apiErr)
		} else {
			s.logger.Error("[sheets] Error uploading to Google Sheets: %v", err)
		}
		return nil, nil
	}

	s.logger.Info("[sheets] Updated %d cells in %s", res.UpdatedCells, res.UpdatedRange)
	return res, nil
}

type googleUpdater struct {
	values *sheets.SpreadsheetsValuesService
}

func newGoogleUpdater(ctx context.Context, credentialsJSON []byte) (valuesUpdater, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &googleUpdater{values: svc.Spreadsheets.Values}, nil
}

func (g *googleUpdater) Update(ctx context.Context, spreadsheetID, rng string, vr *sheets.ValueRange) (*sheets.UpdateValuesResponse, error) {
	return g.values.Update(spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
}
