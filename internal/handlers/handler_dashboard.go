package handlers

import (
	"net/http"
	"strconv"

	"shuul-console/internal/middlewares"
)

// DashboardGET serves the headline counters.
func DashboardGET(ctx *middlewares.AppContext) {
	counters := ctx.Dashboard.Counters(ctx.Context, ctx.SessionManager.Token(ctx))
	ctx.WriteJSON(http.StatusOK, counters)
}

func TopCountriesGET(ctx *middlewares.AppContext) {
	series, err := ctx.Dashboard.TopCountries(ctx.Context, ctx.SessionManager.Token(ctx))
	if err != nil {
		ctx.Logger.Error("loading top countries failed", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "chart unavailable")
		return
	}
	ctx.WriteJSON(http.StatusOK, series)
}

func TopRulesGET(ctx *middlewares.AppContext) {
	series, err := ctx.Dashboard.TopRules(ctx.Context, ctx.SessionManager.Token(ctx))
	if err != nil {
		ctx.Logger.Error("loading top rules failed", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "chart unavailable")
		return
	}
	ctx.WriteJSON(http.StatusOK, series)
}

// EvolutionGET serves the bucketed request series. unit defaults to day,
// last to 30 buckets.
func EvolutionGET(ctx *middlewares.AppContext) {
	query := ctx.Request.URL.Query()
	unit := query.Get("unit")
	last, _ := strconv.Atoi(query.Get("last"))

	series, err := ctx.Dashboard.Evolution(ctx.Context, ctx.SessionManager.Token(ctx), unit, last)
	if err != nil {
		ctx.Logger.Error("loading evolution failed", "error", err)
		ctx.SetJSONError(http.StatusBadGateway, "chart unavailable")
		return
	}
	ctx.WriteJSON(http.StatusOK, series)
}
