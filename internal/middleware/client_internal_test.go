package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

func newContext(headers map[string]string, remoteAddr string) huma.Context {
	req := httptest.NewRequest(http.MethodGet, "http://links.example.com/s/abc", nil)
	req.RemoteAddr = remoteAddr

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return humatest.NewContext(&huma.Operation{}, req, httptest.NewRecorder())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "single forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1"},
			remoteAddr: "10.0.0.9:5000",
			want:       "192.168.1.1",
		},
		{
			name:       "first of several forwarded addresses",
			headers:    map[string]string{"X-Forwarded-For": " 192.168.1.1 , 10.0.0.1, 172.16.0.1"},
			remoteAddr: "10.0.0.9:5000",
			want:       "192.168.1.1",
		},
		{
			name:       "real ip header",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1"},
			remoteAddr: "10.0.0.9:5000",
			want:       "10.0.0.1",
		},
		{
			name:       "remote address without port",
			remoteAddr: "10.0.0.9:5000",
			want:       "10.0.0.9",
		},
		{
			name:       "remote address that is not host:port",
			remoteAddr: "unix",
			want:       "unix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clientIP(newContext(tt.headers, tt.remoteAddr)))
		})
	}
}

func TestClientKey(t *testing.T) {
	a := newContext(map[string]string{"User-Agent": "A"}, "10.0.0.1:1")
	b := newContext(map[string]string{"User-Agent": "B"}, "10.0.0.1:1")
	a2 := newContext(map[string]string{"User-Agent": "A"}, "10.0.0.1:2")

	assert.NotEqual(t, clientKey(a), clientKey(b), "user agent is part of the key")
	assert.Equal(t, clientKey(a), clientKey(a2), "source port is not")
	assert.Len(t, clientKey(a), 64)
}

func TestRequestSchemeAndHost(t *testing.T) {
	t.Run("defaults to plain http and the request host", func(t *testing.T) {
		ctx := newContext(nil, "10.0.0.1:1")

		assert.Equal(t, "http", requestScheme(ctx))
		assert.Equal(t, "links.example.com", requestHost(ctx))
	})

	t.Run("honors forwarding headers", func(t *testing.T) {
		ctx := newContext(map[string]string{
			"X-Forwarded-Proto": "HTTPS, http",
			"X-Forwarded-Host":  "sho.rt, internal",
		}, "10.0.0.1:1")

		assert.Equal(t, "https", requestScheme(ctx))
		assert.Equal(t, "sho.rt", requestHost(ctx))
	})

	t.Run("tls connections are https", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.TLS = &tls.ConnectionState{}
		ctx := humatest.NewContext(&huma.Operation{}, req, httptest.NewRecorder())

		assert.Equal(t, "https", requestScheme(ctx))
	})
}
