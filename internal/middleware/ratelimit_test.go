package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     2,
		interval: time.Minute,
	}

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request refused")
	}
	if !rl.allow("10.0.0.1") {
		t.Fatal("second request refused")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("third request allowed past the bucket")
	}
	// Other clients keep their own bucket.
	if !rl.allow("10.0.0.2") {
		t.Fatal("separate IP was throttled")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     1,
		interval: 50 * time.Millisecond,
	}

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request refused")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("bucket did not empty")
	}

	time.Sleep(60 * time.Millisecond)
	if !rl.allow("10.0.0.1") {
		t.Fatal("bucket did not refill after interval")
	}
}
