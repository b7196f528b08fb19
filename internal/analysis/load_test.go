package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func artifactJSON(crate string) string {
	return fmt.Sprintf(`{
		"prelude": {
			"crate_name": %q,
			"crate_root": "src/lib.rs",
			"external_crates": [],
			"span": {"file_name": "src/lib.rs", "byte_start": 0, "byte_end": 0, "line_start": 1, "line_end": 1, "column_start": 1, "column_end": 1}
		},
		"imports": [], "defs": [], "refs": [], "macro_refs": []
	}`, crate)
}

func crateNames(records []Analysis) []string {
	names := make([]string, 0, len(records))
	for _, a := range records {
		names = append(names, a.Prelude.CrateName)
	}
	return names
}

func TestLoader_SkipsBadFiles(t *testing.T) {
	root := t.TempDir()
	good1 := writeArtifact(t, root, candidateDirs[0], "good1.json", artifactJSON("alpha"))
	bogus := writeArtifact(t, root, candidateDirs[0], "bogus.json",
		`{"imports": [], "defs": [{"kind": "Bogus", "id": {"krate": 0, "index": 1}, "span": {"file_name": "x", "byte_start": 0, "byte_end": 0, "line_start": 1, "line_end": 1, "column_start": 1, "column_end": 1}, "name": "n", "qualname": "q", "value": "v"}], "refs": [], "macro_refs": []}`)
	good2 := writeArtifact(t, root, candidateDirs[1], "good2.json", artifactJSON("beta"))
	missing := filepath.Join(root, "nope.json")

	records, bag := Loader{}.Load(context.Background(), []string{good1, bogus, good2, missing})

	got := crateNames(records)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("records: got %v, want [alpha beta]", got)
	}
	if bag.Len() != 2 {
		t.Fatalf("diagnostics: got %d, want 2", bag.Len())
	}
	items := bag.Items()
	if items[0].File != bogus {
		t.Errorf("first diagnostic file: got %s", items[0].File)
	}
	var unknown *UnknownVariantError
	if !errors.As(items[0].Err, &unknown) || unknown.Value != "Bogus" {
		t.Errorf("first diagnostic error: got %v", items[0].Err)
	}
	if items[1].File != missing {
		t.Errorf("second diagnostic file: got %s", items[1].File)
	}
}

func TestLoader_EmptyBatch(t *testing.T) {
	records, bag := Loader{}.Load(context.Background(), nil)
	if len(records) != 0 || bag.Len() != 0 {
		t.Errorf("got %d records, %d diagnostics; want none", len(records), bag.Len())
	}
}

func TestLoader_ParallelKeepsOrder(t *testing.T) {
	root := t.TempDir()
	var paths, want []string
	for i := 0; i < 16; i++ {
		crate := fmt.Sprintf("crate%02d", i)
		paths = append(paths, writeArtifact(t, root, candidateDirs[0], crate+".json", artifactJSON(crate)))
		want = append(want, crate)
	}

	records, bag := Loader{Jobs: 4}.Load(context.Background(), paths)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	got := crateNames(records)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order: got %v, want %v", got, want)
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	root := t.TempDir()
	path := writeArtifact(t, root, candidateDirs[0], "a.json", artifactJSON("alpha"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, bag := Loader{}.Load(ctx, []string{path})
	if len(records) != 0 {
		t.Errorf("got %d records, want none", len(records))
	}
	if bag.Len() != 1 || !errors.Is(bag.Items()[0].Err, context.Canceled) {
		t.Errorf("diagnostics: got %v", bag.Items())
	}
}

func TestLoader_UsesCache(t *testing.T) {
	root := t.TempDir()
	path := writeArtifact(t, root, candidateDirs[0], "a.json", artifactJSON("alpha"))

	cache, err := OpenDiskCache(filepath.Join(root, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	loader := Loader{Cache: cache}

	records, bag := loader.Load(context.Background(), []string{path})
	if bag.Len() != 0 || len(records) != 1 {
		t.Fatalf("first load: %d records, diagnostics %v", len(records), bag.Items())
	}

	// Second load must hit the cache and decode identically.
	records, bag = loader.Load(context.Background(), []string{path})
	if bag.Len() != 0 || len(records) != 1 || records[0].Prelude.CrateName != "alpha" {
		t.Errorf("second load: %d records, diagnostics %v", len(records), bag.Items())
	}
}
