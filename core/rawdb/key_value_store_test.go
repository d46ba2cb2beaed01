package rawdb

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryKVStoreBasic(t *testing.T) {
	db := NewMemoryKVStore()

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key: got %v, want %v", err, ErrNotFound)
	}

	if err := db.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("got %q", got)
	}

	ok, err := db.Has([]byte("k"))
	if err != nil || !ok {
		t.Fatalf("has: %v %v", ok, err)
	}

	if err := db.Delete([]byte("k")); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.Has([]byte("k")); ok {
		t.Fatal("deleted key still present")
	}
	if db.Len() != 0 {
		t.Fatalf("len: got %d", db.Len())
	}
}

func TestMemoryKVStoreCopiesValues(t *testing.T) {
	db := NewMemoryKVStore()
	val := []byte("abc")
	if err := db.Put([]byte("k"), val); err != nil {
		t.Fatal(err)
	}
	val[0] = 'x'
	got, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("abc")) {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}
	got[0] = 'y'
	again, _ := db.Get([]byte("k"))
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatalf("returned value aliased store: %q", again)
	}
}

func TestMemoryBatch(t *testing.T) {
	db := NewMemoryKVStore()
	if err := db.Put([]byte("stale"), []byte("1")); err != nil {
		t.Fatal(err)
	}

	batch := db.NewBatch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Put([]byte("b"), []byte("2"))
	batch.Delete([]byte("stale"))
	if batch.Len() != 3 {
		t.Fatalf("batch len: got %d", batch.Len())
	}

	// Nothing applied until Write.
	if ok, _ := db.Has([]byte("a")); ok {
		t.Fatal("batch applied early")
	}

	if err := batch.Write(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.Has([]byte("a")); !ok {
		t.Fatal("batch put not applied")
	}
	if ok, _ := db.Has([]byte("stale")); ok {
		t.Fatal("batch delete not applied")
	}

	if err := batch.Write(); !errors.Is(err, ErrBatchWritten) {
		t.Fatalf("double write: got %v, want %v", err, ErrBatchWritten)
	}

	batch.Reset()
	batch.Put([]byte("c"), []byte("3"))
	if err := batch.Write(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.Has([]byte("c")); !ok {
		t.Fatal("reused batch not applied")
	}
}
