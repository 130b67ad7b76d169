package handlers

import (
	"encoding/json"
	"net/http"

	"shuul-console/internal/middlewares"
)

type PrefsResponse struct {
	DarkMode bool   `json:"dark_mode"`
	Locale   string `json:"locale"`
}

// PrefsGET serves the presentation preferences on their own, without the
// session state AuthStatusHandler bundles in.
func PrefsGET(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, PrefsResponse{
		DarkMode: ctx.SessionManager.IsDarkMode(ctx),
		Locale:   ctx.SessionManager.Locale(ctx),
	})
}

type ModeRequest struct {
	Dark *bool `json:"dark"`
}

// ModePOST sets the light or dark mode preference. With no explicit value
// the current mode is toggled.
func ModePOST(ctx *middlewares.AppContext) {
	var req ModeRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	dark := !ctx.SessionManager.IsDarkMode(ctx)
	if req.Dark != nil {
		dark = *req.Dark
	}
	ctx.SessionManager.SetDarkMode(ctx, dark)

	ctx.WriteJSON(http.StatusOK, map[string]bool{"dark_mode": dark})
}

type LocaleRequest struct {
	Locale string `json:"locale"`
}

func LocalePOST(ctx *middlewares.AppContext) {
	var req LocaleRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ctx.SessionManager.SetLocale(ctx, req.Locale); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, err.Error())
		return
	}

	ctx.WriteJSON(http.StatusOK, map[string]string{"locale": req.Locale})
}
