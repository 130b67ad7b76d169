package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuul-console/internal/api"
	"shuul-console/internal/handlers"
	"shuul-console/internal/testutil"
)

func TestLoginPOST(t *testing.T) {
	upstream := testutil.EnvelopeServer(t, http.StatusOK, map[string]any{
		"status":  200,
		"message": "OK",
		"data":    map[string]string{"token": "tok-123"},
	})
	defer upstream.Close()

	tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/login").
		WithJSONBody(t, handlers.LoginRequest{Email: "admin@example.com", Password: "secret"}).
		WithAPI(api.NewClient(upstream.URL, time.Second, nil))
	tc.FakeSession.RoleValue = "admin"

	tc.CallHandler(handlers.LoginPOST)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "logged_in", true)
	tc.AssertJSONString(t, "role", "admin")

	require.Len(t, tc.FakeSession.LoginCalls, 1)
	assert.Equal(t, "tok-123", tc.FakeSession.LoginCalls[0])
	assert.True(t, tc.FakeSession.LoggedIn)
}

func TestLoginPOSTRejected(t *testing.T) {
	upstream := testutil.EnvelopeServer(t, http.StatusUnauthorized, map[string]any{
		"status":  401,
		"message": "invalid credentials",
	})
	defer upstream.Close()

	tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/login").
		WithJSONBody(t, handlers.LoginRequest{Email: "admin@example.com", Password: "wrong"}).
		WithAPI(api.NewClient(upstream.URL, time.Second, nil))

	tc.CallHandler(handlers.LoginPOST)

	tc.AssertStatus(t, http.StatusUnauthorized)
	tc.AssertJSONString(t, "message", "invalid credentials")
	assert.Empty(t, tc.FakeSession.LoginCalls)
}

func TestLoginPOSTSessionBindFailure(t *testing.T) {
	upstream := testutil.EnvelopeServer(t, http.StatusOK, map[string]any{
		"status": 200,
		"data":   map[string]string{"token": "tok-123"},
	})
	defer upstream.Close()

	tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/login").
		WithJSONBody(t, handlers.LoginRequest{Email: "admin@example.com", Password: "secret"}).
		WithAPI(api.NewClient(upstream.URL, time.Second, nil))
	tc.FakeSession.LoginErr = assert.AnError

	tc.CallHandler(handlers.LoginPOST)

	tc.AssertStatus(t, http.StatusUnauthorized)
	assert.False(t, tc.FakeSession.LoggedIn)
}

func TestLoginPOSTValidation(t *testing.T) {
	tests := []struct {
		name string
		body handlers.LoginRequest
	}{
		{name: "missing email", body: handlers.LoginRequest{Password: "secret"}},
		{name: "missing password", body: handlers.LoginRequest{Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/login").
				WithJSONBody(t, tt.body)

			tc.CallHandler(handlers.LoginPOST)

			tc.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestLoginPOSTMalformedBody(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/login")
	req := httptest.NewRequest(http.MethodPost, "/api/console/auth/login", bytes.NewReader([]byte("{not json")))
	tc.WithRequest(req)

	tc.CallHandler(handlers.LoginPOST)

	tc.AssertStatus(t, http.StatusBadRequest)
}

func TestLogoutPOST(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodPost, "/api/console/auth/logout")
	tc.FakeSession.LoggedIn = true

	tc.CallHandler(handlers.LogoutPOST)

	tc.AssertStatus(t, http.StatusOK)
	assert.Equal(t, 1, tc.FakeSession.LogoutCalls)
	assert.False(t, tc.FakeSession.LoggedIn)
}
