package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/exotimeline/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*CatalogueDB, func()) {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return db, cleanup
}

func newTestRun(source string, ts time.Time, planets ...model.Planet) *model.FetchRun {
	run := model.NewFetchRun(source, "exoplanets.txt")
	run.Timestamp = ts
	run.Digest = "abc123"
	run.Planets = planets
	run.Stats = model.FetchStats{Total: len(planets) + 2, Incomplete: 1, PreCutoff: 1, Kept: len(planets)}
	return run
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		dbPath := filepath.Join(dbDir, FileName)
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != dbPath {
			t.Errorf("expected path %s, got %s", dbPath, db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "missing")
		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("directory should not have been created")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		_ = db.Close()
	})
}

func TestCatalogueDB_SaveAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ts := time.Date(2024, 5, 1, 12, 30, 0, 123456789, time.UTC)
	run := newTestRun("https://example.com/a", ts,
		model.Planet{Name: "Alpha b", Mass: 1.5, SemimajorAxis: 0.05, DiscoveryYear: 1995, DiscoveryMethod: "RV"},
		model.Planet{Name: "Beta c", Mass: 0.01, SemimajorAxis: 2, DiscoveryYear: 2010},
	)
	run.FromCache = true

	if err := db.SaveFetchRun(ctx, run); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	got, err := db.GetFetchRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}

	if got.Source != run.Source || got.Digest != run.Digest || got.OutputPath != run.OutputPath {
		t.Errorf("unexpected run metadata %+v", got)
	}
	if !got.FromCache {
		t.Error("expected from_cache to round trip")
	}
	if !got.Timestamp.Equal(ts) {
		t.Errorf("expected timestamp %v, got %v", ts, got.Timestamp)
	}
	if got.Stats != run.Stats {
		t.Errorf("expected stats %+v, got %+v", run.Stats, got.Stats)
	}
	if len(got.Planets) != 2 {
		t.Fatalf("expected 2 planets, got %d", len(got.Planets))
	}
	if got.Planets[0] != run.Planets[0] || got.Planets[1] != run.Planets[1] {
		t.Errorf("planets changed: %+v", got.Planets)
	}
}

func TestCatalogueDB_GetFetchRun_NotFound(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := db.GetFetchRun(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestCatalogueDB_ListAndLatest(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := newTestRun("src-a", base, model.Planet{Name: "a", Mass: 1, SemimajorAxis: 1, DiscoveryYear: 2000})
	newer := newTestRun("src-a", base.Add(time.Hour),
		model.Planet{Name: "a", Mass: 1, SemimajorAxis: 1, DiscoveryYear: 2000},
		model.Planet{Name: "b", Mass: 2, SemimajorAxis: 2, DiscoveryYear: 2001},
	)
	other := newTestRun("src-b", base.Add(2*time.Hour))

	for _, run := range []*model.FetchRun{older, newer, other} {
		if err := db.SaveFetchRun(ctx, run); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	t.Run("lists all sources newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListFetchRuns(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].ID != other.ID || runs[2].ID != older.ID {
			t.Errorf("unexpected order: %v, %v, %v", runs[0].ID, runs[1].ID, runs[2].ID)
		}
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListFetchRuns(ctx, "src-b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 1 || runs[0].ID != other.ID {
			t.Errorf("unexpected runs %+v", runs)
		}
	})

	t.Run("latest runs carry planets", func(t *testing.T) {
		t.Parallel()

		runs, err := db.LatestRuns(ctx, "src-a", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != newer.ID || len(runs[0].Planets) != 2 {
			t.Errorf("unexpected newest run %+v", runs[0])
		}
		if runs[1].ID != older.ID || len(runs[1].Planets) != 1 {
			t.Errorf("unexpected older run %+v", runs[1])
		}
	})

	t.Run("latest runs limited to available", func(t *testing.T) {
		t.Parallel()

		runs, err := db.LatestRuns(ctx, "src-b", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 1 {
			t.Errorf("expected 1 run, got %d", len(runs))
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "stored format with nanoseconds",
			input: "2024-05-01 12:30:00.000000001",
			want:  time.Date(2024, 5, 1, 12, 30, 0, 1, time.UTC),
		},
		{
			name:  "sqlite default",
			input: "2024-05-01 12:30:00",
			want:  time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "2024-05-01T12:30:00Z",
			want:  time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "garbage",
			input: "yesterday",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
