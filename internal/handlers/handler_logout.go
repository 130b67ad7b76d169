package handlers

import (
	"net/http"

	"shuul-console/internal/middlewares"
)

func LogoutPOST(ctx *middlewares.AppContext) {
	if err := ctx.SessionManager.Logout(ctx); err != nil {
		ctx.Logger.Error("logout failed", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "logout failed")
		return
	}
	ctx.SetJSONStatus(http.StatusOK, "OK")
}
