package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFileCache(t *testing.T) Cache {
	t.Helper()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFileCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestFileCache(t)

	if _, ok, err := c.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("Get(absent) = (ok=%v, err=%v), want miss", ok, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want hit", ok, err)
	}
	if string(data) != "value" {
		t.Errorf("data = %q, want %q", data, "value")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("Get after expiry = (ok=%v, err=%v), want miss", ok, err)
	}
}

func TestFileCacheNoExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "key"); err != nil || !ok {
		t.Errorf("Get with zero ttl = (ok=%v, err=%v), want hit", ok, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestFileCache(t)

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get after Delete hit, want miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	path := c.(*FileCache).path("key")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("Get(corrupt) = (ok=%v, err=%v), want clean miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed on read")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "key"); err != nil || ok {
		t.Errorf("Get = (ok=%v, err=%v), want miss", ok, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
