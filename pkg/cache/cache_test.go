package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = (found=%v, err=%v), want miss", found, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "k")
	if err != nil || !found || string(data) != "payload" {
		t.Fatalf("Get = (%q, %v, %v), want payload hit", data, found, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Fatal("value survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}

func TestFileCache_TTLExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found, err := c.Get(ctx, "k"); err != nil || found {
		t.Errorf("expired entry: found=%v err=%v, want miss", found, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, err := c.Get(ctx, "k"); err != nil || found {
		t.Errorf("NullCache stored a value")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if a, b := k.GraphKey(101), k.GraphKey(101); a != b {
		t.Errorf("GraphKey not stable: %q vs %q", a, b)
	}
	if a, b := k.GraphKey(101), k.GraphKey(102); a == b {
		t.Error("distinct courses share a graph key")
	}

	opts := LayoutKeyOpts{Direction: "LR", NodeSeparation: 50, RankSeparation: 100}
	if a, b := k.LayoutKey("h", opts), k.LayoutKey("h", opts); a != b {
		t.Error("LayoutKey not stable")
	}
	other := opts
	other.Direction = "TB"
	if k.LayoutKey("h", opts) == k.LayoutKey("h", other) {
		t.Error("direction change did not change layout key")
	}

	if k.HTTPKey("graph", "http://a") == k.HTTPKey("graph", "http://b") {
		t.Error("distinct URLs share an HTTP key")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "student:42:")

	want := "student:42:" + base.GraphKey(7)
	if got := scoped.GraphKey(7); got != want {
		t.Errorf("GraphKey = %q, want %q", got, want)
	}
}

func TestHashInts_OrderInvariant(t *testing.T) {
	a := HashInts([]int{3, 1, 2})
	b := HashInts([]int{1, 2, 3})
	if a != b {
		t.Error("hash depends on element order")
	}
	if HashInts([]int{1, 2}) == HashInts([]int{1, 2, 3}) {
		t.Error("distinct sets share a hash")
	}
}
