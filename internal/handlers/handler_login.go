package handlers

import (
	"encoding/json"
	"net/http"

	"shuul-console/internal/api"
	"shuul-console/internal/middlewares"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Role     string `json:"role,omitempty"`
	Message  string `json:"message,omitempty"`
}

// LoginPOST exchanges credentials with the backend and binds the returned
// token to the session. The token itself never reaches the browser.
func LoginPOST(ctx *middlewares.AppContext) {
	var req LoginRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		ctx.SetJSONError(http.StatusBadRequest, "email and password are required")
		return
	}

	envelope := ctx.API.Login(ctx.Context, req.Email, req.Password)
	payload, ok := api.Decode[struct {
		Token string `json:"token"`
	}](envelope)
	if !ok || payload.Token == "" {
		ctx.Logger.Info("login rejected", "status", envelope.Status)
		ctx.WriteJSON(http.StatusUnauthorized, LoginResponse{Message: envelope.Message})
		return
	}

	if err := ctx.SessionManager.Login(ctx, payload.Token); err != nil {
		ctx.Logger.Warn("binding token to session failed", "error", err)
		ctx.WriteJSON(http.StatusUnauthorized, LoginResponse{Message: "login failed"})
		return
	}

	ctx.Consoles.Get(ctx.SessionManager.SessionToken(ctx)).SetToken(payload.Token)

	ctx.WriteJSON(http.StatusOK, LoginResponse{
		LoggedIn: true,
		Role:     ctx.SessionManager.Role(ctx),
	})
}
