package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "true client ip wins",
			headers: map[string]string{"True-Client-IP": "203.0.113.9", "X-Real-IP": "198.51.100.2"},
			remote:  "10.0.0.1:4321",
			want:    "203.0.113.9",
		},
		{
			name:    "x real ip",
			headers: map[string]string{"X-Real-IP": "198.51.100.2"},
			remote:  "10.0.0.1:4321",
			want:    "198.51.100.2",
		},
		{
			name:    "first forwarded entry",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remote:  "10.0.0.1:4321",
			want:    "203.0.113.9",
		},
		{
			name:    "invalid header falls back to remote addr",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			remote:  "192.0.2.7:1234",
			want:    "192.0.2.7",
		},
		{
			name:   "no headers uses remote addr",
			remote: "192.0.2.7:1234",
			want:   "192.0.2.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestClientIPMiddlewareRewritesRemoteAddr(t *testing.T) {
	var seen string
	handler := ClientIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	r.Header.Set("X-Real-IP", "203.0.113.9")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "203.0.113.9:4321", seen)
}
