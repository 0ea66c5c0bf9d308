package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"
)

// TemplateFuncs is installed into every template set.
var TemplateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"datetime": func(t interface{}) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("02 Jan 2006 15:04")
		case *time.Time:
			if v != nil {
				return v.Format("02 Jan 2006 15:04")
			}
		}
		return ""
	},
}

// HTMLRenderer keeps a separate template set per page.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// Instance picks the page's template set for rendering.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	return render.HTML{
		Template: r.Templates[name],
		Data:     data,
	}
}

// Render writes the HTTP response.
func (r *HTMLRenderer) Render(w http.ResponseWriter, code int, data ...interface{}) error {
	name := data[0].(string)
	templateData := data[1]
	instance := r.Instance(name, templateData)
	return instance.Render(w)
}
