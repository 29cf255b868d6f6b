package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/recipe-links/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func newContext(method string, op *huma.Operation) huma.Context {
	req := httptest.NewRequest(method, "/", nil)

	return humatest.NewContext(op, req, httptest.NewRecorder())
}

func TestOperationScopeResolver_Resolve(t *testing.T) {
	resolver := ratelimit.NewOperationScopeResolver()

	tests := []struct {
		name   string
		method string
		op     *huma.Operation
		want   []ratelimit.Scope
	}{
		{
			name:   "GET is read",
			method: http.MethodGet,
			op:     &huma.Operation{},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
		{
			name:   "HEAD is read",
			method: http.MethodHead,
			op:     &huma.Operation{},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
		{
			name:   "POST is write",
			method: http.MethodPost,
			op:     &huma.Operation{},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		},
		{
			name:   "metadata scope wins over method",
			method: http.MethodGet,
			op: &huma.Operation{Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeWrite},
			}},
			want: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		},
		{
			name:   "foreign metadata falls back to method",
			method: http.MethodDelete,
			op:     &huma.Operation{Metadata: map[string]any{ratelimit.MetadataKey: "nonsense"}},
			want:   []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(newContext(tt.method, tt.op)))
		})
	}
}

func TestGetEndpointConfig(t *testing.T) {
	t.Run("returns nil without metadata", func(t *testing.T) {
		assert.Nil(t, ratelimit.GetEndpointConfig(newContext(http.MethodGet, &huma.Operation{})))
	})

	t.Run("returns configured endpoint config", func(t *testing.T) {
		op := &huma.Operation{Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		}}

		cfg := ratelimit.GetEndpointConfig(newContext(http.MethodGet, op))

		if assert.NotNil(t, cfg) {
			assert.True(t, cfg.Disabled)
		}
	})
}
