package storage

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSnapshotSaveLoad(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore() error = %v", err)
	}
	defer store.Close()

	snap := BusinessSnapshot{
		UserID:   "user-42",
		Products: json.RawMessage(`[{"id":"p1","name":"Rice 5kg","quantity":12}]`),
		Invoices: json.RawMessage(`[{"id":"inv1","total":450}]`),
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load("user-42")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil for saved snapshot")
	}

	var products []map[string]any
	if err := json.Unmarshal(loaded.Products, &products); err != nil {
		t.Fatalf("products not valid JSON: %v", err)
	}
	if len(products) != 1 || products[0]["name"] != "Rice 5kg" {
		t.Errorf("unexpected products: %v", products)
	}

	if loaded.FetchedAt.IsZero() {
		t.Error("FetchedAt was not defaulted on save")
	}
}

func TestSnapshotLoadMissing(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore() error = %v", err)
	}
	defer store.Close()

	loaded, err := store.Load("nobody")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() = %+v, want nil for missing user", loaded)
	}

	age, err := store.Age("nobody")
	if err != nil {
		t.Fatalf("Age() error = %v", err)
	}
	if age >= 0 {
		t.Errorf("Age() = %v, want negative for missing user", age)
	}
}

func TestSnapshotReplace(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSnapshotStore() error = %v", err)
	}
	defer store.Close()

	first := BusinessSnapshot{
		UserID:    "user-1",
		Products:  json.RawMessage(`[{"id":"p1"}]`),
		FetchedAt: time.Now().Add(-time.Hour),
	}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save(first) error = %v", err)
	}

	second := BusinessSnapshot{
		UserID:   "user-1",
		Products: json.RawMessage(`[{"id":"p1"},{"id":"p2"}]`),
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save(second) error = %v", err)
	}

	loaded, err := store.Load("user-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var products []map[string]any
	if err := json.Unmarshal(loaded.Products, &products); err != nil {
		t.Fatalf("products not valid JSON: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("len(products) = %d, want 2 after replace", len(products))
	}

	age, err := store.Age("user-1")
	if err != nil {
		t.Fatalf("Age() error = %v", err)
	}
	if age < 0 || age > time.Minute {
		t.Errorf("Age() = %v, want fresh timestamp from replace", age)
	}
}
