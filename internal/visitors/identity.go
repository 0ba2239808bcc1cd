package visitors

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

const (
	fallbackIP         = "127.0.0.1"
	unknownFingerprint = "unknown_browser"
	visitorIDHexLength = 32
)

// Identity derives a pseudo-stable visitor identifier from request metadata.
// It is best-effort only: collisions and spoofing are expected and acceptable
// for free-tier metering, and any unreadable metadata degrades to a fixed
// loopback identity rather than blocking the flow.
func Identity(r *http.Request) (visitorID, ip string) {
	ip = clientIP(r)
	fingerprint := browserFingerprint(r)
	return deriveVisitorID(ip, fingerprint), ip
}

func clientIP(r *http.Request) string {
	if r == nil {
		return fallbackIP
	}
	// Proxy headers, most specific first.
	candidates := []string{
		strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0]),
		strings.TrimSpace(r.Header.Get("X-Real-Ip")),
		strings.TrimSpace(r.Header.Get("CF-Connecting-IP")),
		strings.TrimSpace(r.Header.Get("X-Client-IP")),
	}
	for _, ip := range candidates {
		if ip != "" && !strings.EqualFold(ip, "unknown") {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return fallbackIP
}

func browserFingerprint(r *http.Request) string {
	if r == nil {
		return unknownFingerprint
	}
	userAgent := r.Header.Get("User-Agent")
	acceptLanguage := r.Header.Get("Accept-Language")
	if userAgent == "" && acceptLanguage == "" {
		return unknownFingerprint
	}
	return userAgent + "|" + acceptLanguage
}

func deriveVisitorID(ip, fingerprint string) string {
	sum := sha256.Sum256([]byte(ip + "|" + fingerprint))
	return hex.EncodeToString(sum[:])[:visitorIDHexLength]
}
