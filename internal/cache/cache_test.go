package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c := New(5 * time.Minute)
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", compute)
		if err != nil {
			t.Fatal(err)
		}
		if v.(int) != 1 {
			t.Errorf("got %v, want cached 1", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeExpiresByAge(t *testing.T) {
	c := New(time.Minute)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatal(err)
	}
	current = current.Add(59 * time.Second)
	if _, err := c.GetOrCompute("k", compute); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("entry expired too early, compute ran %d times", calls)
	}

	current = current.Add(2 * time.Second)
	v, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int) != 2 || calls != 2 {
		t.Errorf("expired entry not recomputed: v=%v calls=%d", v, calls)
	}
}

func TestGetOrComputeDistinctKeys(t *testing.T) {
	c := New(time.Minute)
	a, _ := c.GetOrCompute("frame:1000", func() (interface{}, error) { return "a", nil })
	b, _ := c.GetOrCompute("frame:2000", func() (interface{}, error) { return "b", nil })
	if a == b {
		t.Error("different keys must not share entries")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
}

func TestGetOrComputeErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("store down")
	calls := 0
	compute := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	if _, err := c.GetOrCompute("k", compute); !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	v, err := c.GetOrCompute("k", compute)
	if err != nil {
		t.Fatal(err)
	}
	if v.(string) != "ok" {
		t.Errorf("failed compute should not be cached, got %v", v)
	}
}
