package middlewares

import (
	"net/http"
)

// SessionProvider is the session surface handlers depend on. Tokens are the
// backend-issued JWTs held server side for the browser.
type SessionProvider interface {
	Login(ctx *AppContext, token string) error
	Logout(ctx *AppContext) error
	Token(ctx *AppContext) string
	SessionToken(ctx *AppContext) string
	IsLoggedIn(ctx *AppContext) bool
	IsAdmin(ctx *AppContext) bool
	Role(ctx *AppContext) string
	EnsureExpiryTask(ctx *AppContext)

	IsDarkMode(ctx *AppContext) bool
	SetDarkMode(ctx *AppContext, dark bool)
	Locale(ctx *AppContext) string
	SetLocale(ctx *AppContext, locale string) error

	LoadAndSave(next http.Handler) http.Handler
}
