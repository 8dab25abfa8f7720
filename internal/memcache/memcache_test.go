package memcache

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

func TestCache_GetSet(t *testing.T) {
	t.Run("returns absent for unknown key", func(t *testing.T) {
		c := New()

		if _, ok := c.Get("stock:TCS"); ok {
			t.Error("Expected miss on empty cache")
		}
	})

	t.Run("returns stored payload", func(t *testing.T) {
		c := New()
		c.Set("stock:TCS", json.RawMessage(`{"price":3500}`))

		got, ok := c.Get("stock:TCS")
		if !ok {
			t.Fatal("Expected hit")
		}
		if string(got) != `{"price":3500}` {
			t.Errorf("Unexpected payload %s", got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		c := New()
		c.Set("mf:MPP002", json.RawMessage(`1`))
		c.Set("mf:MPP002", json.RawMessage(`2`))

		got, _ := c.Get("mf:MPP002")
		if string(got) != "2" {
			t.Errorf("Expected overwritten value, got %s", got)
		}
	})

	t.Run("entries never expire without ttl", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := New(WithClock(func() time.Time { return now }))
		c.Set("market:snapshot", json.RawMessage(`{}`))

		now = now.Add(365 * 24 * time.Hour)

		if _, ok := c.Get("market:snapshot"); !ok {
			t.Error("Expected entry to survive without ttl")
		}
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := New(WithTTL(24*time.Hour), WithClock(func() time.Time { return now }))
		c.Set("ipo:list:current", json.RawMessage(`[]`))

		now = now.Add(23 * time.Hour)
		if _, ok := c.Get("ipo:list:current"); !ok {
			t.Error("Expected entry within ttl")
		}

		now = now.Add(2 * time.Hour)
		if _, ok := c.Get("ipo:list:current"); ok {
			t.Error("Expected entry to expire after ttl")
		}
		if c.Stats().Size != 0 {
			t.Error("Expected expired entry to be evicted")
		}
	})
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Set("a", json.RawMessage(`1`))
	c.Set("b", json.RawMessage(`2`))

	c.Clear("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be cleared")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Expected b to remain")
	}

	c.ClearAll()
	if stats := c.Stats(); stats.Size != 0 || len(stats.Keys) != 0 {
		t.Errorf("Expected empty cache, got %+v", stats)
	}
}

func TestCache_Stats(t *testing.T) {
	c := New()
	c.Set("stock:TCS", json.RawMessage(`{}`))
	c.Set("ipo:abc", json.RawMessage(`{}`))

	stats := c.Stats()
	if stats.Size != 2 {
		t.Errorf("Expected size 2, got %d", stats.Size)
	}
	if stats.Keys[0] != "ipo:abc" || stats.Keys[1] != "stock:TCS" {
		t.Errorf("Expected sorted keys, got %v", stats.Keys)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("stock:S%d", i%5)
			c.Set(key, json.RawMessage(fmt.Sprintf(`%d`, i)))
			c.Get(key)
			c.Stats()
		}(i)
	}
	wg.Wait()

	if c.Stats().Size != 5 {
		t.Errorf("Expected 5 keys, got %d", c.Stats().Size)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"market snapshot", MarketSnapshotKey(), "market:snapshot"},
		{"stock uppercased", StockKey("tcs"), "stock:TCS"},
		{"mutual fund verbatim", MutualFundKey("MPP002"), "mf:MPP002"},
		{"ipo verbatim", IPOKey("Tata Technologies"), "ipo:Tata Technologies"},
		{"ipo list", IPOListKey(model.IPOUpcoming), "ipo:list:upcoming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}
