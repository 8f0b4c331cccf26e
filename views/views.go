// Package views renders pages as templ components.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"t":          T,
	"monthTitle": monthTitle,
	"weekdays":   weekdays,
	"entryView":  entryView,
}).ParseFS(templateFS, "templates/*.html"))

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errors.Wrapf(pages.ExecuteTemplate(w, name, data), "rendering %s", name)
	})
}

const (
	TabSignIn   = "sign-in"
	TabSignUp   = "sign-up"
	TabWrite    = "write"
	TabCalendar = "calendar"
	TabShared   = "shared"
	TabStats    = "stats"
	TabTeacher  = "teacher"
)

func page(tab string, d types.PageData) templ.Component {
	d.Tab = tab
	return component("page", d)
}

func SignInForm(d types.PageData) templ.Component { return page(TabSignIn, d) }
func SignUpForm(d types.PageData) templ.Component { return page(TabSignUp, d) }
func Write(d types.PageData) templ.Component      { return page(TabWrite, d) }
func Calendar(d types.PageData) templ.Component   { return page(TabCalendar, d) }
func Shared(d types.PageData) templ.Component     { return page(TabShared, d) }
func Stats(d types.PageData) templ.Component      { return page(TabStats, d) }
func Teacher(d types.PageData) templ.Component    { return page(TabTeacher, d) }
