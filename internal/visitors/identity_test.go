package visitors

import (
	"net/http/httptest"
	"testing"
)

func TestIdentityDeterministic(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en-US")

	id1, ip1 := Identity(req)
	id2, ip2 := Identity(req)

	if id1 != id2 || ip1 != ip2 {
		t.Fatalf("identity not deterministic: (%s,%s) vs (%s,%s)", id1, ip1, id2, ip2)
	}
	if ip1 != "203.0.113.7" {
		t.Fatalf("expected first X-Forwarded-For hop, got %s", ip1)
	}
	if len(id1) != visitorIDHexLength {
		t.Fatalf("expected %d-char visitor id, got %d", visitorIDHexLength, len(id1))
	}
}

func TestIdentityHeaderPriority(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-Ip", "198.51.100.4")
	req.Header.Set("CF-Connecting-IP", "192.0.2.9")

	_, ip := Identity(req)
	if ip != "198.51.100.4" {
		t.Fatalf("expected X-Real-Ip to win over CF-Connecting-IP, got %s", ip)
	}
}

func TestIdentityIgnoresUnknownPlaceholder(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "unknown")
	req.Header.Set("X-Real-Ip", "198.51.100.4")

	_, ip := Identity(req)
	if ip != "198.51.100.4" {
		t.Fatalf("expected 'unknown' hop to be skipped, got %s", ip)
	}
}

func TestIdentityFallsBackGracefully(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = ""

	id, ip := Identity(req)
	if ip != fallbackIP {
		t.Fatalf("expected loopback fallback, got %s", ip)
	}
	if id == "" {
		t.Fatal("fallback identity must still produce an id")
	}
	// A nil request degrades to the same identity instead of failing.
	nilID, nilIP := Identity(nil)
	if nilID != id || nilIP != ip {
		t.Fatalf("nil request should yield the fallback identity, got (%s,%s)", nilID, nilIP)
	}
}

func TestIdentityVariesWithFingerprint(t *testing.T) {
	base := httptest.NewRequest("GET", "/", nil)
	base.Header.Set("X-Real-Ip", "203.0.113.7")
	base.Header.Set("User-Agent", "agent-a")

	other := httptest.NewRequest("GET", "/", nil)
	other.Header.Set("X-Real-Ip", "203.0.113.7")
	other.Header.Set("User-Agent", "agent-b")

	idA, _ := Identity(base)
	idB, _ := Identity(other)
	if idA == idB {
		t.Fatal("different user agents should produce different visitor ids")
	}
}
