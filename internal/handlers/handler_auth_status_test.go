package handlers_test

import (
	"net/http"
	"testing"

	"shuul-console/internal/handlers"
	"shuul-console/internal/testutil"
)

func TestAuthStatusLoggedOut(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/console/auth/status")

	tc.CallHandler(handlers.AuthStatusHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "logged_in", false)
	tc.AssertJSONBool(t, "dark_mode", true)
	tc.AssertJSONString(t, "locale", "en")
}

func TestAuthStatusLoggedIn(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, http.MethodGet, "/api/console/auth/status")
	tc.FakeSession.LoggedIn = true
	tc.FakeSession.RoleValue = "admin"
	tc.FakeSession.Dark = false
	tc.FakeSession.LocaleVal = "es"

	tc.CallHandler(handlers.AuthStatusHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONBool(t, "logged_in", true)
	tc.AssertJSONString(t, "role", "admin")
	tc.AssertJSONBool(t, "dark_mode", false)
	tc.AssertJSONString(t, "locale", "es")
}
