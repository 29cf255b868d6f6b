package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata for analytics and link building.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
	Scheme    string
	Host      string
}

// BaseURL returns scheme://host of the request, or "" when the host is unknown.
func (m RequestMeta) BaseURL() string {
	if m.Host == "" {
		return ""
	}

	scheme := m.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + m.Host
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
