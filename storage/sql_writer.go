package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fashion-etl/models"
	"fashion-etl/utils"
)

const insertBatchSize = 50

// quotedColumns keeps the capitalised column names so rows land in tables
// created by earlier loads of the same catalog.
var quotedColumns = func() string {
	q := make([]string, len(models.Columns))
	for i, c := range models.Columns {
		q[i] = `"` + c + `"`
	}
	return strings.Join(q, ", ")
}()

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dialect captures the few differences between the supported databases.
type dialect struct {
	driver      string
	placeholder func(n int) string
}

var (
	postgresDialect = dialect{driver: "postgres", placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}
	sqliteDialect   = dialect{driver: "sqlite", placeholder: func(int) string { return "?" }}
)

// parseDSN picks the driver for a connection string and returns the form the
// driver expects. SQLAlchemy-style URLs ("postgresql+psycopg2://") are accepted.
func parseDSN(dsn string) (dialect, string, error) {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		return sqliteDialect, dsn[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "file:"), lower == ":memory:":
		return sqliteDialect, dsn, nil
	case strings.HasPrefix(lower, "postgresql+"):
		i := strings.Index(dsn, "://")
		if i < 0 {
			return dialect{}, "", fmt.Errorf("sql: malformed dsn")
		}
		return postgresDialect, "postgres" + dsn[i:], nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host="), strings.Contains(lower, "dbname="):
		return postgresDialect, dsn, nil
	}
	return dialect{}, "", fmt.Errorf("sql: unsupported dsn scheme")
}

// SQLWriter appends clean records to a relational table.
type SQLWriter struct {
	dsn    string
	table  string
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewSQLWriter creates a writer that connects on each Write using dsn and
// appends into table, creating it when absent. An unsupported dsn is only
// reported here; the error surfaces from Write.
func NewSQLWriter(dsn, table string, maxRetries int, logger *utils.Logger) (*SQLWriter, error) {
	if !tableNameRegexp.MatchString(table) {
		return nil, fmt.Errorf("sql: invalid table name %q", table)
	}
	if _, _, err := parseDSN(dsn); err != nil {
		logger.Warn("[sql] %v; the %s sink will fail at load time", err, table)
	}
	return &SQLWriter{
		dsn:   dsn,
		table: table,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}, nil
}

// Name identifies the sink in load results.
func (w *SQLWriter) Name() string { return "postgresql" }

// Write appends records to the table inside one transaction.
func (w *SQLWriter) Write(ctx context.Context, records []models.CleanRecord) error {
	d, dsn, err := parseDSN(w.dsn)
	if err != nil {
		return err
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return fmt.Errorf("sql: open: %w", err)
	}
	defer db.Close()

	if err := w.retry.Do(ctx, "sql-ping", db.PingContext); err != nil {
		return fmt.Errorf("sql: ping: %w", err)
	}

	return w.writeDB(ctx, db, d, records)
}

func (w *SQLWriter) writeDB(ctx context.Context, db *sql.DB, d dialect, records []models.CleanRecord) error {
	if _, err := db.ExecContext(ctx, createTableSQL(w.table)); err != nil {
		return fmt.Errorf("sql: create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sql: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < len(records); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		query, args := insertBatch(w.table, d, records[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("sql: insert rows %d-%d: %w", i, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sql: commit: %w", err)
	}
	w.logger.Info("[sql] Appended %d rows to %s", len(records), w.table)
	return nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			"Title"     TEXT,
			"Price"     DOUBLE PRECISION,
			"Rating"    DOUBLE PRECISION,
			"Colors"    TEXT,
			"Size"      TEXT,
			"Gender"    TEXT,
			"Timestamp" TIMESTAMP
		)`, table)
}

func insertBatch(table string, d dialect, batch []models.CleanRecord) (string, []any) {
	const cols = 7
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, r := range batch {
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = d.placeholder(idx*cols + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, r.Title, r.Price, r.Rating, r.Colors, r.Size, r.Gender, r.Timestamp)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		table, quotedColumns, strings.Join(valueStrings, ","))
	return query, valueArgs
}
