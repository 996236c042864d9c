package marketdata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadSeries(t *testing.T) {
	path := writeTempCSV(t, "RELIANCE.NS,TCS.NS\n2950,4200\n2960.5,4210\n2970,4195\n")

	store, err := LoadSeries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prices := store.Prices("RELIANCE.NS")
	if len(prices) != 3 || prices[0] != 2950 || prices[1] != 2960.5 {
		t.Fatalf("unexpected series: %v", prices)
	}
	if len(store.Prices("TCS.NS")) != 3 {
		t.Fatalf("unexpected TCS series: %v", store.Prices("TCS.NS"))
	}
	if store.Prices("MISSING.NS") != nil {
		t.Fatal("expected nil for unknown column")
	}
}

func TestLoadSeriesSkipsUnparseableCells(t *testing.T) {
	path := writeTempCSV(t, "RELIANCE.NS,TCS.NS\n2950,4200\n,bad\n2970,4195\n")

	store, err := LoadSeries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Prices("RELIANCE.NS"); len(got) != 2 {
		t.Fatalf("expected blank cell dropped, got %v", got)
	}
	if got := store.Prices("TCS.NS"); len(got) != 2 {
		t.Fatalf("expected bad cell dropped, got %v", got)
	}
}

func TestLoadSeriesRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "RELIANCE.NS,TCS.NS\n2950\n2960,4210\n")

	store, err := LoadSeries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Prices("TCS.NS"); len(got) != 1 || got[0] != 4210 {
		t.Fatalf("expected short row tolerated, got %v", got)
	}
}

func TestLoadSeriesHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "RELIANCE.NS\n")

	store, err := LoadSeries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Columns()) != 0 {
		t.Fatalf("expected empty store, got columns %v", store.Columns())
	}
}

func TestLoadSeriesMissingFile(t *testing.T) {
	if _, err := LoadSeries(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSeriesStoreNilReceiver(t *testing.T) {
	var store *SeriesStore
	if store.Prices("RELIANCE.NS") != nil {
		t.Fatal("nil store should return nil prices")
	}
	if store.Columns() != nil {
		t.Fatal("nil store should return nil columns")
	}
}
