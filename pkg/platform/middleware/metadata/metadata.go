package metadata

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// Context keys for client metadata.
type contextKeyClientIP struct{}
type contextKeyUserAgent struct{}
type contextKeyClientDevice struct{}

// Device summarizes the parsed User-Agent of a caller. The public badge
// verification endpoint logs it to distinguish embedding sites from browsers.
type Device struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

// ClientMetadata extracts the client IP, raw User-Agent, and a parsed device
// summary from the request and stores them in the context. Apply early in the
// middleware chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUA := r.Header.Get("User-Agent")

		ctx := r.Context()
		ctx = context.WithValue(ctx, contextKeyClientIP{}, ClientIPFromRequest(r))
		ctx = context.WithValue(ctx, contextKeyUserAgent{}, rawUA)
		ctx = context.WithValue(ctx, contextKeyClientDevice{}, parseDevice(rawUA))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseDevice(rawUA string) Device {
	if rawUA == "" {
		return Device{}
	}
	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	return Device{
		Browser: browser,
		OS:      ua.OS(),
		Mobile:  ua.Mobile(),
		Bot:     ua.Bot(),
	}
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

// GetUserAgent retrieves the raw User-Agent from the context.
func GetUserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(contextKeyUserAgent{}).(string); ok {
		return ua
	}
	return ""
}

// GetClientDevice retrieves the parsed device summary from the context.
func GetClientDevice(ctx context.Context) Device {
	if device, ok := ctx.Value(contextKeyClientDevice{}).(Device); ok {
		return device
	}
	return Device{}
}

// WithClientMetadata injects client metadata into a context. Useful for
// service unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, rawUA string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, clientIP)
	ctx = context.WithValue(ctx, contextKeyUserAgent{}, rawUA)
	ctx = context.WithValue(ctx, contextKeyClientDevice{}, parseDevice(rawUA))
	return ctx
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" for IPv4 and "[::1]:port" for IPv6.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
