package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"fashion-etl/models"
	"fashion-etl/utils"
)

type fakeUpdater struct {
	calls int
	got   *sheets.ValueRange
	rng   string
	err   error
}

func (f *fakeUpdater) Update(_ context.Context, _, rng string, vr *sheets.ValueRange) (*sheets.UpdateValuesResponse, error) {
	f.calls++
	f.got, f.rng = vr, rng
	if f.err != nil {
		return nil, f.err
	}
	cells := 0
	for _, row := range vr.Values {
		cells += len(row)
	}
	return &sheets.UpdateValuesResponse{UpdatedCells: int64(cells), UpdatedRange: rng}, nil
}

func newTestSheetsWriter(t *testing.T, fake *fakeUpdater) *SheetsWriter {
	t.Helper()
	creds := filepath.Join(t.TempDir(), "google-sheets-api.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{"type":"service_account"}`), 0600))

	w := NewSheetsWriter(SheetsConfig{CredentialsFile: creds, SpreadsheetID: "sheet-id", Range: "Sheet1!A2:G9999"}, utils.Discard())
	w.newUpdater = func(context.Context, []byte) (valuesUpdater, error) { return fake, nil }
	return w
}

func TestSheetsUploadSendsStrings(t *testing.T) {
	fake := &fakeUpdater{}
	w := newTestSheetsWriter(t, fake)

	res, err := w.Upload(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.NotNil(t, res)
	require.EqualValues(t, 14, res.UpdatedCells)
	require.Equal(t, "Sheet1!A2:G9999", fake.rng)

	require.Len(t, fake.got.Values, 2)
	for _, row := range fake.got.Values {
		for _, cell := range row {
			require.IsType(t, "", cell)
		}
	}
	require.Equal(t, "product a", fake.got.Values[0][0])
}

func TestSheetsUploadEmpty(t *testing.T) {
	fake := &fakeUpdater{}
	res, err := newTestSheetsWriter(t, fake).Upload(context.Background(), []models.CleanRecord{})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 1, fake.calls)
	require.Empty(t, fake.got.Values)
}

func TestSheetsUploadAPIError(t *testing.T) {
	fake := &fakeUpdater{err: &googleapi.Error{Code: 403, Message: "forbidden"}}
	w := newTestSheetsWriter(t, fake)

	res, err := w.Upload(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.Nil(t, res)

	require.Error(t, w.Write(context.Background(), sampleRecords()))
	require.Equal(t, 2, fake.calls)
}

func TestSheetsUploadConnectionError(t *testing.T) {
	fake := &fakeUpdater{err: errors.New("connection refused")}
	res, err := newTestSheetsWriter(t, fake).Upload(context.Background(), sampleRecords())
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestSheetsMissingCredentialsIsFatal(t *testing.T) {
	w := NewSheetsWriter(SheetsConfig{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")}, utils.Discard())

	res, err := w.Upload(context.Background(), sampleRecords())
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrCredentialsNotFound)
	require.True(t, IsFatal(err))
}
