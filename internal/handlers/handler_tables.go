package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shuul-console/internal/dialog"
	"shuul-console/internal/middlewares"
	"shuul-console/internal/table"
)

// resolveTable returns the session's table for the resource named in the
// route, with the session token already propagated for debounced fetches.
func resolveTable(ctx *middlewares.AppContext) *table.Table {
	name := chi.URLParam(ctx.Request, "resource")
	con := ctx.Consoles.Get(ctx.SessionManager.SessionToken(ctx))
	t, ok := con.Table(name)
	if !ok {
		ctx.SetJSONError(http.StatusNotFound, "unknown resource")
		return nil
	}
	t.SetToken(ctx.SessionManager.Token(ctx))
	return t
}

// TableGET serves the current view state, fetching the first window when
// the table has never loaded.
func TableGET(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}
	if !t.Loaded() {
		t.Fetch(ctx.Context, ctx.SessionManager.Token(ctx))
	}
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

type FilterRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
	// Commit applies immediately, bypassing the debounce. True for an
	// Enter keypress, false for plain typing.
	Commit bool `json:"commit"`
}

func TableFilterPOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	var req FilterRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Commit {
		if t.ApplyFilter(req.Field, req.Value) {
			t.Fetch(ctx.Context, ctx.SessionManager.Token(ctx))
		}
	} else {
		t.FilterInput(req.Field, req.Value)
	}
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

type ChangeRequest struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortKey   string `json:"sort_key"`
	SortOrder string `json:"sort_order"`
}

func TableChangePOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	var req ChangeRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	if t.Change(req.Page, req.PageSize, req.SortKey, table.ParseSortOrder(req.SortOrder)) {
		t.Fetch(ctx.Context, ctx.SessionManager.Token(ctx))
	}
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

type DialogOpenRequest struct {
	Mode string          `json:"mode"`
	ID   json.RawMessage `json:"id,omitempty"`
}

func DialogOpenPOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	var req DialogOpenRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	mode := dialog.ParseMode(req.Mode)
	if mode == dialog.ModeNone {
		ctx.SetJSONError(http.StatusBadRequest, "unknown dialog mode")
		return
	}

	var id any
	if len(req.ID) > 0 {
		if err := json.Unmarshal(req.ID, &id); err != nil {
			ctx.SetJSONError(http.StatusBadRequest, "invalid id")
			return
		}
	}

	if !t.OpenDialog(ctx.Context, ctx.SessionManager.Token(ctx), mode, id) {
		ctx.SetJSONError(http.StatusNotFound, "item not found")
		return
	}
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

type DialogFieldRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func DialogFieldPOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	var req DialogFieldRequest
	if err := json.NewDecoder(ctx.Request.Body).Decode(&req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "invalid request body")
		return
	}

	var value any
	if len(req.Value) > 0 {
		if err := json.Unmarshal(req.Value, &value); err != nil {
			ctx.SetJSONError(http.StatusBadRequest, "invalid value")
			return
		}
	}

	t.Dialog().SetField(req.Field, value)
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

// DialogConfirmPOST runs the staged operation. On success the closed table
// refetches once so the view converges with the backend.
func DialogConfirmPOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	token := ctx.SessionManager.Token(ctx)
	if t.ConfirmDialog(ctx.Context, token) {
		t.Fetch(ctx.Context, token)
	}
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}

func DialogCancelPOST(ctx *middlewares.AppContext) {
	t := resolveTable(ctx)
	if t == nil {
		return
	}

	t.CancelDialog()
	t.Fetch(ctx.Context, ctx.SessionManager.Token(ctx))
	ctx.WriteJSON(http.StatusOK, t.Snapshot())
}
