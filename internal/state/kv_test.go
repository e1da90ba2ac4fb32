// internal/state/kv_test.go
package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKV_GetNotFound(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	_, err := kv.Get("missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestFileKV_SetAndGet(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	if err := kv.Set("greeting", []byte("hello")); err != nil {
		t.Fatal(err)
	}

	got, err := kv.Get("greeting")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestFileKV_SetOverwrites(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	if err := kv.Set("k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("k", []byte("two")); err != nil {
		t.Fatal(err)
	}

	got, err := kv.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Errorf("expected two, got %q", got)
	}
}

func TestFileKV_NonJSONValue(t *testing.T) {
	// Values are opaque strings; they do not need to be valid JSON.
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	if err := kv.Set("raw", []byte("{definitely not json")); err != nil {
		t.Fatal(err)
	}

	got, err := kv.Get("raw")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{definitely not json" {
		t.Errorf("value mangled: %q", got)
	}
}

func TestFileKV_Delete(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	if err := kv.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Delete("k"); err != nil {
		t.Fatal(err)
	}

	_, err := kv.Get("k")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestFileKV_DeleteAbsent(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "store.json"))

	if err := kv.Delete("never-set"); err != nil {
		t.Fatalf("deleting an absent key should be a no-op, got %v", err)
	}
}

func TestFileKV_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	kv1 := NewFileKV(path)
	if err := kv1.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	// A new instance over the same file sees the value
	kv2 := NewFileKV(path)
	got, err := kv2.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestFileKV_AtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv := NewFileKV(path)

	if err := kv.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}

	// Verify no temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not exist after successful set")
	}
}
