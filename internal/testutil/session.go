package testutil

import (
	"net/http"

	"shuul-console/internal/middlewares"
)

// FakeSessionProvider is a hand-rolled SessionProvider for handler tests.
// Fields are plain state; calls to Login and Logout are recorded.
type FakeSessionProvider struct {
	LoggedIn   bool
	Admin      bool
	RoleValue  string
	TokenValue string
	SessionID  string
	Dark       bool
	DarkSet    bool
	LocaleVal  string

	LoginCalls  []string
	LogoutCalls int
	LoginErr    error
}

func NewFakeSessionProvider() *FakeSessionProvider {
	return &FakeSessionProvider{
		Dark:      true,
		LocaleVal: "en",
		SessionID: "test-session",
	}
}

func (f *FakeSessionProvider) Login(_ *middlewares.AppContext, token string) error {
	f.LoginCalls = append(f.LoginCalls, token)
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.LoggedIn = true
	f.TokenValue = token
	return nil
}

func (f *FakeSessionProvider) Logout(*middlewares.AppContext) error {
	f.LogoutCalls++
	f.LoggedIn = false
	f.TokenValue = ""
	return nil
}

func (f *FakeSessionProvider) Token(*middlewares.AppContext) string        { return f.TokenValue }
func (f *FakeSessionProvider) SessionToken(*middlewares.AppContext) string { return f.SessionID }
func (f *FakeSessionProvider) IsLoggedIn(*middlewares.AppContext) bool     { return f.LoggedIn }
func (f *FakeSessionProvider) IsAdmin(*middlewares.AppContext) bool        { return f.Admin }
func (f *FakeSessionProvider) Role(*middlewares.AppContext) string         { return f.RoleValue }
func (f *FakeSessionProvider) EnsureExpiryTask(*middlewares.AppContext)    {}

func (f *FakeSessionProvider) IsDarkMode(*middlewares.AppContext) bool { return f.Dark }

func (f *FakeSessionProvider) SetDarkMode(_ *middlewares.AppContext, dark bool) {
	f.Dark = dark
	f.DarkSet = true
}

func (f *FakeSessionProvider) Locale(*middlewares.AppContext) string { return f.LocaleVal }

func (f *FakeSessionProvider) SetLocale(_ *middlewares.AppContext, locale string) error {
	f.LocaleVal = locale
	return nil
}

func (f *FakeSessionProvider) LoadAndSave(next http.Handler) http.Handler { return next }
