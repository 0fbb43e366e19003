package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/exotimeline/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "exotimeline.db"

// timestampLayout keeps stored timestamps sortable as text.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// CatalogueDB stores fetch runs and the planets they kept.
type CatalogueDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CatalogueDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CatalogueDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned and nothing is created.
func Open(dbDir string, opts Options) (*CatalogueDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run fetch first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CatalogueDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CatalogueDB) Close() error {
	return cdb.db.Close()
}

// Path returns the database file path.
func (cdb *CatalogueDB) Path() string {
	return cdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CatalogueDB) createTables() error {
	schema := `
	-- One row per successful fetch
	CREATE TABLE IF NOT EXISTS fetch_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		digest TEXT,
		output_path TEXT,
		from_cache INTEGER NOT NULL DEFAULT 0,
		stats_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON fetch_runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON fetch_runs(timestamp);

	-- Planets kept by a run, in catalogue order
	CREATE TABLE IF NOT EXISTS planets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES fetch_runs(id),
		position INTEGER NOT NULL,
		name TEXT,
		mass REAL NOT NULL,
		semimajor_axis REAL NOT NULL,
		discovery_year REAL NOT NULL,
		discovery_method TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_planets_run ON planets(run_id, position);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveFetchRun stores a run and its planets in a single transaction.
func (cdb *CatalogueDB) SaveFetchRun(ctx context.Context, run *model.FetchRun) (err error) {
	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO fetch_runs (id, source, timestamp, digest, output_path, from_cache, stats_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID.String(),
		run.Source,
		formatTimestamp(run.Timestamp),
		run.Digest,
		run.OutputPath,
		run.FromCache,
		string(statsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO planets (run_id, position, name, mass, semimajor_axis, discovery_year, discovery_method)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare planet insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range run.Planets {
		if _, err = stmt.ExecContext(ctx,
			run.ID.String(), i, p.Name, p.Mass, p.SemimajorAxis, p.DiscoveryYear, p.DiscoveryMethod,
		); err != nil {
			return fmt.Errorf("failed to insert planet: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fetch run: %w", err)
	}
	return nil
}

// RunMetadata summarizes a stored run without its planets.
type RunMetadata struct {
	ID         uuid.UUID
	Source     string
	Timestamp  time.Time
	Digest     string
	OutputPath string
	FromCache  bool
	Stats      model.FetchStats
}

// ListFetchRuns returns the stored runs, newest first.
// An empty source lists the runs of every source.
func (cdb *CatalogueDB) ListFetchRuns(ctx context.Context, source string) ([]RunMetadata, error) {
	query := `
	SELECT id, source, timestamp, digest, output_path, from_cache, stats_json
	FROM fetch_runs
	WHERE 1=1
	`
	args := make([]any, 0)
	if source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}
	query += " ORDER BY timestamp DESC"

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fetch runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		meta, err := scanRunMetadata(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetFetchRun loads a run and its planets. It returns nil, nil if no run
// has the given ID.
func (cdb *CatalogueDB) GetFetchRun(ctx context.Context, id uuid.UUID) (*model.FetchRun, error) {
	row := cdb.db.QueryRowContext(ctx, `
	SELECT id, source, timestamp, digest, output_path, from_cache, stats_json
	FROM fetch_runs
	WHERE id = ?
	`, id.String())

	meta, err := scanRunMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return cdb.loadRun(ctx, meta)
}

// LatestRuns loads the n newest runs of source with their planets, newest
// first.
func (cdb *CatalogueDB) LatestRuns(ctx context.Context, source string, n int) ([]*model.FetchRun, error) {
	metas, err := cdb.ListFetchRuns(ctx, source)
	if err != nil {
		return nil, err
	}
	if len(metas) > n {
		metas = metas[:n]
	}

	runs := make([]*model.FetchRun, 0, len(metas))
	for _, meta := range metas {
		run, err := cdb.loadRun(ctx, meta)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetRunPlanets returns the planets of a run in catalogue order.
func (cdb *CatalogueDB) GetRunPlanets(ctx context.Context, id uuid.UUID) ([]model.Planet, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT name, mass, semimajor_axis, discovery_year, discovery_method
	FROM planets
	WHERE run_id = ?
	ORDER BY position
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get planets: %w", err)
	}
	defer rows.Close()

	var planets []model.Planet
	for rows.Next() {
		var p model.Planet
		var name, method sql.NullString
		if err := rows.Scan(&name, &p.Mass, &p.SemimajorAxis, &p.DiscoveryYear, &method); err != nil {
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		p.Name = name.String
		p.DiscoveryMethod = method.String
		planets = append(planets, p)
	}
	return planets, rows.Err()
}

func (cdb *CatalogueDB) loadRun(ctx context.Context, meta RunMetadata) (*model.FetchRun, error) {
	planets, err := cdb.GetRunPlanets(ctx, meta.ID)
	if err != nil {
		return nil, err
	}
	return &model.FetchRun{
		ID:         meta.ID,
		Source:     meta.Source,
		Timestamp:  meta.Timestamp,
		Digest:     meta.Digest,
		OutputPath: meta.OutputPath,
		FromCache:  meta.FromCache,
		Planets:    planets,
		Stats:      meta.Stats,
	}, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunMetadata(row rowScanner) (RunMetadata, error) {
	var meta RunMetadata
	var id, timestamp, statsJSON string
	var digest, outputPath sql.NullString

	if err := row.Scan(&id, &meta.Source, &timestamp, &digest, &outputPath, &meta.FromCache, &statsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("failed to scan fetch run: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return meta, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	meta.ID = parsed
	meta.Timestamp = parseTimestamp(timestamp)
	meta.Digest = digest.String
	meta.OutputPath = outputPath.String

	if err := json.Unmarshal([]byte(statsJSON), &meta.Stats); err != nil {
		return meta, fmt.Errorf("failed to parse stats: %w", err)
	}
	return meta, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",  // SQLite default datetime format, fractional seconds accepted
	"2006-01-02T15:04:05Z", // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",  // ISO 8601 without timezone
	time.RFC3339,           // Full RFC3339 format
	time.RFC3339Nano,       // RFC3339 with nanoseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
