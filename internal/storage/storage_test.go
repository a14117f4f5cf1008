package storage

import (
	"os"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOptionsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// Nothing saved yet: defaults.
	opts, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.HashMB != 64 {
		t.Errorf("default HashMB = %d, want 64", opts.HashMB)
	}

	if err := s.SaveOptions(EngineOptions{HashMB: 256}); err != nil {
		t.Fatalf("SaveOptions failed: %v", err)
	}
	opts, err = s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.HashMB != 256 {
		t.Errorf("HashMB = %d, want 256", opts.HashMB)
	}
	if opts.LastUsed.IsZero() {
		t.Error("LastUsed not stamped on save")
	}
}

func TestTotalsAccumulate(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.LoadTotals()
	if err != nil {
		t.Fatalf("LoadTotals failed: %v", err)
	}
	if totals.Searches != 0 || totals.Nodes != 0 {
		t.Errorf("fresh totals = %+v, want zero", totals)
	}

	if err := s.AddTotals(3, 1000); err != nil {
		t.Fatalf("AddTotals failed: %v", err)
	}
	if err := s.AddTotals(2, 500); err != nil {
		t.Fatalf("AddTotals failed: %v", err)
	}

	totals, err = s.LoadTotals()
	if err != nil {
		t.Fatalf("LoadTotals failed: %v", err)
	}
	if totals.Searches != 5 || totals.Nodes != 1500 {
		t.Errorf("totals = %+v, want 5 searches / 1500 nodes", totals)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveOptions(EngineOptions{HashMB: 128}); err != nil {
		t.Fatalf("SaveOptions failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	opts, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.HashMB != 128 {
		t.Errorf("HashMB = %d after reopen, want 128", opts.HashMB)
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("DataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("data directory was not created: %s", dataDir)
	}
}
