package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/exotimeline/internal/catalogue"
	"github.com/nao1215/exotimeline/internal/model"
)

// testCatalogue holds the complete 1990 planet, the planet without mass and
// the 1980 body.
const testCatalogue = `<systems>
  <system><star>
    <planet><name>Alpha b</name><mass>1</mass><semimajoraxis>1</semimajoraxis><discoveryyear>1990</discoveryyear><discoverymethod>RV</discoverymethod></planet>
  </star></system>
  <system><binary><star>
    <planet><name>Beta b</name><semimajoraxis>1</semimajoraxis><discoveryyear>2000</discoveryyear></planet>
  </star></binary></system>
  <system><star>
    <planet><name>Jupiter</name><mass>1</mass><semimajoraxis>1</semimajoraxis><discoveryyear>1980</discoveryyear></planet>
  </star></system>
</systems>`

// fakeDownloader serves a fixed document.
type fakeDownloader struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeDownloader) Download(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

// fakeStore collects saved runs.
type fakeStore struct {
	runs []*model.FetchRun
	err  error
}

func (f *fakeStore) SaveFetchRun(_ context.Context, run *model.FetchRun) error {
	if f.err != nil {
		return f.err
	}
	f.runs = append(f.runs, run)
	return nil
}

func TestDownloadStep(t *testing.T) {
	t.Parallel()

	t.Run("downloads and digests", func(t *testing.T) {
		t.Parallel()

		d := &fakeDownloader{data: []byte(testCatalogue)}
		run := model.NewFetchRun("https://example.com/systems.xml", "out.txt")

		if err := NewDownloadStep(d).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(run.Raw) != testCatalogue {
			t.Error("expected raw catalogue in run")
		}
		if run.Digest != catalogue.Digest([]byte(testCatalogue)) {
			t.Errorf("unexpected digest %q", run.Digest)
		}
		if run.FromCache {
			t.Error("expected a network fetch")
		}
	})

	t.Run("propagates download errors", func(t *testing.T) {
		t.Parallel()

		wantErr := &catalogue.StatusError{URL: "u", StatusCode: 500, Status: "500 Internal Server Error"}
		d := &fakeDownloader{err: wantErr}
		run := model.NewFetchRun("u", "out.txt")

		err := NewDownloadStep(d).Do(context.Background(), run)
		var statusErr *catalogue.StatusError
		if !errors.As(err, &statusErr) {
			t.Errorf("expected *catalogue.StatusError, got %v", err)
		}
	})

	t.Run("uses and fills the cache", func(t *testing.T) {
		t.Parallel()

		cache := catalogue.NewCache(t.TempDir(), time.Hour)
		d := &fakeDownloader{data: []byte(testCatalogue)}
		step := NewDownloadStep(d, WithCache(cache))

		first := model.NewFetchRun("https://example.com/a", "out.txt")
		if err := step.Do(context.Background(), first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second := model.NewFetchRun("https://example.com/a", "out.txt")
		if err := step.Do(context.Background(), second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if d.calls != 1 {
			t.Errorf("expected one download, got %d", d.calls)
		}
		if !second.FromCache {
			t.Error("expected second run to be served from cache")
		}
		if first.Digest != second.Digest {
			t.Error("expected identical digests")
		}
	})
}

func TestParseAndFilterSteps(t *testing.T) {
	t.Parallel()

	t.Run("keeps one of three entries", func(t *testing.T) {
		t.Parallel()

		run := model.NewFetchRun("src", "out.txt")
		run.Raw = []byte(testCatalogue)

		if err := NewParseStep().Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(run.Entries))
		}
		if run.Raw != nil {
			t.Error("expected raw data to be released")
		}

		if err := NewFilterStep(nil).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := model.FetchStats{Total: 3, Incomplete: 1, PreCutoff: 1, Kept: 1}
		if run.Stats != want {
			t.Errorf("got stats %+v, expected %+v", run.Stats, want)
		}
		if run.Planets[0].Name != "Alpha b" {
			t.Errorf("unexpected planet %+v", run.Planets[0])
		}
	})

	t.Run("parse without download fails", func(t *testing.T) {
		t.Parallel()

		err := NewParseStep().Do(context.Background(), model.NewFetchRun("src", "out.txt"))
		if !errors.Is(err, ErrNoCatalogue) {
			t.Errorf("expected ErrNoCatalogue, got %v", err)
		}
	})

	t.Run("parse failure names the source", func(t *testing.T) {
		t.Parallel()

		run := model.NewFetchRun("https://mirror.example.com", "out.txt")
		run.Raw = []byte("<systems><planet><mass>lots</mass></planet></systems>")

		err := NewParseStep().Do(context.Background(), run)
		if !errors.Is(err, catalogue.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "mirror.example.com") {
			t.Errorf("expected source in error: %v", err)
		}
	})
}

func TestWriteTableStep(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exoplanets.txt")
	run := model.NewFetchRun("src", path)
	run.Planets = []model.Planet{{Name: "a", Mass: 1, SemimajorAxis: 1, DiscoveryYear: 1990}}

	if err := NewWriteTableStep().Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# mass (Mjup), semi-major axis (au), discovery year\n1.0000e+00 1.0000e+00 1.9900e+03\n"
	if string(data) != want {
		t.Errorf("got %q, expected %q", data, want)
	}
}

func TestRecordStep(t *testing.T) {
	t.Parallel()

	t.Run("saves the run", func(t *testing.T) {
		t.Parallel()

		store := &fakeStore{}
		run := model.NewFetchRun("src", "out.txt")
		if err := NewRecordStep(store).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.runs) != 1 || store.runs[0] != run {
			t.Error("expected run to be saved")
		}
	})

	t.Run("wraps store errors", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("disk full")
		err := NewRecordStep(&fakeStore{err: storeErr}).Do(context.Background(), model.NewFetchRun("src", "out.txt"))
		if !errors.Is(err, storeErr) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})
}
