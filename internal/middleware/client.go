package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// clientIP extracts the client IP from the request, trusting proxy headers.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	addr := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}

// clientKey identifies a client for rate limiting by IP and User-Agent.
func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}

// requestScheme returns the scheme the client used to reach us.
func requestScheme(ctx huma.Context) string {
	if proto := ctx.Header("X-Forwarded-Proto"); proto != "" {
		first, _, _ := strings.Cut(proto, ",")

		return strings.ToLower(strings.TrimSpace(first))
	}

	if ctx.TLS() != nil {
		return "https"
	}

	return "http"
}

// requestHost returns the host the client addressed.
func requestHost(ctx huma.Context) string {
	if host := ctx.Header("X-Forwarded-Host"); host != "" {
		first, _, _ := strings.Cut(host, ",")

		return strings.TrimSpace(first)
	}

	return ctx.Host()
}
