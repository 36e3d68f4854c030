package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %v, %v, %v, want miss", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "build:abc"); hit {
		t.Error("empty cache should miss")
	}

	if err := c.Set(ctx, "build:abc", []byte("graph bytes"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "build:abc")
	if err != nil || !hit || string(data) != "graph bytes" {
		t.Errorf("Get() = %q, %v, %v, want hit", data, hit, err)
	}

	// Overwrite
	if err := c.Set(ctx, "build:abc", []byte("v2"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if data, _, _ := c.Get(ctx, "build:abc"); string(data) != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", data)
	}

	if err := c.Delete(ctx, "build:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "build:abc"); hit {
		t.Error("Get() after Delete should miss")
	}
	if err := c.Delete(ctx, "build:abc"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}

	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after Clear: %d entries", len(entries))
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Clear should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile error: %v", err)
	}
	if got != Hash([]byte("hello")) {
		t.Errorf("HashFile() = %s, want %s", got, Hash([]byte("hello")))
	}
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("HashFile of missing file should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	opts := BuildKeyOpts{WeightColumn: 2, Prefix: "graph", Directed: true, LowEdgeThreshold: 5}

	bk := k.BuildKey("ents", "rels", opts)
	if !strings.HasPrefix(bk, "build:") || len(bk) != len("build:")+64 {
		t.Errorf("BuildKey() = %s, want build:<sha256>", bk)
	}
	if bk != k.BuildKey("ents", "rels", opts) {
		t.Error("BuildKey should be deterministic")
	}

	changed := opts
	changed.LowEdgeThreshold = 6
	if bk == k.BuildKey("ents", "rels", changed) {
		t.Error("different thresholds should produce different keys")
	}
	if bk == k.BuildKey("rels", "ents", opts) {
		t.Error("swapped inputs should produce different keys")
	}

	pk1 := k.PartitionKey("g", PartitionKeyOpts{Partitioner: "label-propagation", MaxIterations: 10})
	pk2 := k.PartitionKey("g", PartitionKeyOpts{Partitioner: "label-propagation", MaxIterations: 20})
	if !strings.HasPrefix(pk1, "partition:") || pk1 == pk2 {
		t.Errorf("PartitionKey() = %s, %s", pk1, pk2)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "hemibrain:")

	want := "hemibrain:" + inner.BuildKey("a", "b", BuildKeyOpts{})
	if got := scoped.BuildKey("a", "b", BuildKeyOpts{}); got != want {
		t.Errorf("BuildKey() = %s, want %s", got, want)
	}

	// Nil inner falls back to the default keyer
	nilScoped := NewScopedKeyer(nil, "p:")
	if got := nilScoped.PartitionKey("g", PartitionKeyOpts{}); got != "p:"+inner.PartitionKey("g", PartitionKeyOpts{}) {
		t.Errorf("PartitionKey() with nil inner = %s", got)
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("disk full")
	err := backendErr("file", "set", cause)

	if !IsBackendError(err) {
		t.Error("IsBackendError should be true")
	}
	if !errors.Is(err, cause) {
		t.Error("BackendError should unwrap to its cause")
	}
	if err.Error() != "file cache set: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if backendErr("file", "set", nil) != nil {
		t.Error("backendErr(nil) should be nil")
	}
	if IsBackendError(cause) {
		t.Error("plain errors are not backend errors")
	}
}
