package middleware

import "testing"

func TestUserRateLimiterBurstAndIsolation(t *testing.T) {
	l := NewUserRateLimiter(60, 2)

	if !l.allow("user-1") || !l.allow("user-1") {
		t.Fatal("burst of 2 should allow the first two requests")
	}
	if l.allow("user-1") {
		t.Fatal("third immediate request should be rejected")
	}

	// Buckets are per user — a different user is unaffected.
	if !l.allow("user-2") {
		t.Fatal("other user's bucket should be full")
	}
}
