package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrCachesValue(t *testing.T) {
	c := New()
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return "v1", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOr(TagProjects, time.Minute, loader)
		if err != nil {
			t.Fatalf("GetOr: %v", err)
		}
		if v != "v1" {
			t.Fatalf("value = %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestGetOrDoesNotCacheError(t *testing.T) {
	c := New()
	calls := 0
	failing := func() (interface{}, error) {
		calls++
		return nil, errors.New("boom")
	}

	if _, err := c.GetOr(TagManagers, time.Minute, failing); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := c.GetOr(TagManagers, time.Minute, failing); err == nil {
		t.Fatalf("expected error on retry")
	}
	if calls != 2 {
		t.Fatalf("loader called %d times, want 2", calls)
	}
}

func TestExpiryAndInvalidate(t *testing.T) {
	c := New()
	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	// 즉시 만료되는 TTL
	if _, err := c.GetOr(TagItemData, -time.Second, loader); err != nil {
		t.Fatalf("GetOr: %v", err)
	}
	v, err := c.GetOr(TagItemData, time.Minute, loader)
	if err != nil {
		t.Fatalf("GetOr: %v", err)
	}
	if v != 2 {
		t.Fatalf("expired entry should reload, got %v", v)
	}

	c.Invalidate(TagItemData)
	v, err = c.GetOr(TagItemData, time.Minute, loader)
	if err != nil {
		t.Fatalf("GetOr: %v", err)
	}
	if v != 3 {
		t.Fatalf("invalidated entry should reload, got %v", v)
	}
}

func TestSweepRemovesExpiredOnly(t *testing.T) {
	c := New()
	fresh := func() (interface{}, error) { return "fresh", nil }
	stale := func() (interface{}, error) { return "stale", nil }

	if _, err := c.GetOr(TagProjects, time.Minute, fresh); err != nil {
		t.Fatalf("GetOr: %v", err)
	}
	if _, err := c.GetOr(TagDailyReports, -time.Second, stale); err != nil {
		t.Fatalf("GetOr: %v", err)
	}

	if removed := c.Sweep(); removed != 1 {
		t.Fatalf("swept %d entries, want 1", removed)
	}

	reloaded := false
	if _, err := c.GetOr(TagProjects, time.Minute, func() (interface{}, error) {
		reloaded = true
		return nil, nil
	}); err != nil {
		t.Fatalf("GetOr: %v", err)
	}
	if reloaded {
		t.Fatalf("fresh entry should survive sweep")
	}
}
