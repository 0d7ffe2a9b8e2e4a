package cache

import (
	"testing"
	"time"
)

func TestKeyStable(t *testing.T) {
	url := "https://example.com/2018/counties/file.csv"
	if Key(url) != Key(url) {
		t.Error("Key is not stable for the same URL")
	}
	if Key(url) == Key(url+"?x=1") {
		t.Error("different URLs produced the same key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache returned a hit")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired key still present")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("https://example.com/file.csv")

	if err := c.Set(key, []byte("office,candidate,votes\n"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "office,candidate,votes\n" {
		t.Fatalf("Get = (%q, %v)", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("https://example.com/file.csv")

	if err := c.Set(key, []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expired entry still served")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	key := Key("https://example.com/file.csv")

	// Seed only the disk layer, as a previous run would have.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("cross-run"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := layered.Get(key)
	if !found || string(val) != "cross-run" {
		t.Fatalf("Get = (%q, %v), want disk hit", val, found)
	}

	// Remove the disk entry; the promoted copy must still serve.
	_ = disk.Delete(key)
	val, found = layered.Get(key)
	if !found || string(val) != "cross-run" {
		t.Fatalf("promoted Get = (%q, %v), want memory hit", val, found)
	}
}

func TestLayeredCacheSetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	key := Key("https://example.com/file.csv")

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := layered.Set(key, []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A fresh disk view sees the entry.
	disk := NewDiskCache(dir, time.Hour)
	if _, found := disk.Get(key); !found {
		t.Error("Set did not reach the disk layer")
	}

	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := layered.Get(key); found {
		t.Error("cleared cache still serves")
	}
}
