package middlewares

import (
	"net/http"
	"strings"
)

// SessionTaskMiddleware re-arms the token expiry task for sessions restored
// from the store, so a console restart cannot leave an expired token alive
// until its next request.
func SessionTaskMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		appCtx.SessionManager.EnsureExpiryTask(appCtx)
		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates a route on a live signed-in session. API routes get a
// JSON 401, page routes get redirected to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !appCtx.SessionManager.IsLoggedIn(appCtx) {
			deny(appCtx, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin additionally requires the admin role claim.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !appCtx.SessionManager.IsLoggedIn(appCtx) {
			deny(appCtx, r)
			return
		}
		if !appCtx.SessionManager.IsAdmin(appCtx) {
			appCtx.SetJSONError(http.StatusForbidden, http.StatusText(http.StatusForbidden))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func deny(appCtx *AppContext, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		appCtx.SetJSONError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}
	appCtx.Redirect("/login", http.StatusFound)
}
