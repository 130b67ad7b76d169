package handlers

import (
	"net/http"

	"shuul-console/internal/middlewares"
	"shuul-console/internal/resources"
	"shuul-console/internal/schema"
)

type FieldView struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Type     string          `json:"type"`
	Default  any             `json:"default,omitempty"`
	Editable bool            `json:"editable"`
	Visible  bool            `json:"visible"`
	Required bool            `json:"required"`
	Filter   bool            `json:"filterable"`
	Sortable bool            `json:"sortable"`
	Width    int             `json:"width,omitempty"`
	Fixed    string          `json:"fixed,omitempty"`
	Options  []schema.Option `json:"options,omitempty"`
}

type ResourceView struct {
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	HasActions bool        `json:"has_actions"`
	Fields     []FieldView `json:"fields"`
}

// ResourcesGET lists the managed collections and their column layouts so
// the page shell can build its navigation and table headers.
func ResourcesGET(ctx *middlewares.AppContext) {
	views := make([]ResourceView, 0, len(resources.Names()))
	for _, name := range resources.Names() {
		def, _ := resources.Lookup(name)
		view := ResourceView{
			Name:       def.Name,
			Title:      def.Title,
			HasActions: def.HasActions,
		}
		for _, f := range def.Fields {
			view.Fields = append(view.Fields, FieldView{
				Key:      f.Key(),
				Label:    f.Label,
				Type:     f.Type.String(),
				Default:  f.Default,
				Editable: f.Editable,
				Visible:  f.Visible,
				Required: f.Required,
				Filter:   f.Filterable(),
				Sortable: f.Sortable(),
				Width:    f.Width,
				Fixed:    f.Fixed,
				Options:  f.Options,
			})
		}
		views = append(views, view)
	}
	ctx.WriteJSON(http.StatusOK, views)
}
