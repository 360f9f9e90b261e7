package bot

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestRateLimiter_Allow はバースト内のリクエストが許可されることを検証する。
func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            rate.Limit(1),
		Burst:           3,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow(500) {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if rl.Allow(500) {
		t.Error("request beyond burst should be denied")
	}
}

// TestRateLimiter_PerUser は制限がユーザーごとに独立していることを検証する。
func TestRateLimiter_PerUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		Rate:            rate.Limit(0.0001),
		Burst:           1,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	if !rl.Allow(500) {
		t.Fatal("first request for user 500 should be allowed")
	}
	if rl.Allow(500) {
		t.Error("second request for user 500 should be denied")
	}
	if !rl.Allow(501) {
		t.Error("first request for user 501 should be allowed")
	}

	if got := rl.LimiterCount(); got != 2 {
		t.Errorf("LimiterCount() = %d, want 2", got)
	}
}
