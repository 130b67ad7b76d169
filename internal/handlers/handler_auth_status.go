package handlers

import (
	"net/http"

	"shuul-console/internal/middlewares"
)

type AuthStatusResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Role     string `json:"role,omitempty"`
	DarkMode bool   `json:"dark_mode"`
	Locale   string `json:"locale"`
}

// AuthStatusHandler reports session state plus the presentation
// preferences the page shell needs before first paint.
func AuthStatusHandler(ctx *middlewares.AppContext) {
	response := AuthStatusResponse{
		DarkMode: ctx.SessionManager.IsDarkMode(ctx),
		Locale:   ctx.SessionManager.Locale(ctx),
	}

	if !ctx.SessionManager.IsLoggedIn(ctx) {
		ctx.WriteJSON(http.StatusOK, response)
		return
	}

	response.LoggedIn = true
	response.Role = ctx.SessionManager.Role(ctx)
	ctx.WriteJSON(http.StatusOK, response)
}
