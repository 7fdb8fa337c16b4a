// Package view renders the panel page and its fragments. Everything goes
// through html/template, so backup names and server messages are escaped
// for the context they land in, attributes included.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/ui"
	"github.com/isdelr/panel-console/internal/validate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded script and stylesheet.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Field describes one input of the configuration form.
type Field struct {
	Name        string
	Label       string
	Type        string // text, password, number, select, checkbox
	Placeholder string
	Value       string
	Options     []string
	Mark        validate.Mark
}

// PageData is everything the panel page shows.
type PageData struct {
	Title         string
	FormID        string
	GuardID       string // this page's unsaved-changes guard
	FormAction    string
	Fields        []Field
	Backups       services.BackupListState
	DialogVisible bool
	Notifications []models.Notification
	Loading       ui.LoadingState
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
	loc  *time.Location
}

// New parses the templates. Dates are shown in loc; nil means local time.
func New(loc *time.Location) (*Renderer, error) {
	r := &Renderer{loc: loc}
	funcs := template.FuncMap{
		"size":            FormatSize,
		"number":          FormatNumber,
		"date":            func(t time.Time) string { return FormatDate(t, r.loc) },
		"restoreQuestion": services.RestoreQuestion,
		"restartQuestion": func() string { return services.RestartQuestion },
	}
	tmpl, err := template.New("panel").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

// Page writes the full panel page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// BackupList renders the backup dialog's list container.
func (r *Renderer) BackupList(st services.BackupListState) (string, error) {
	return r.render("backup_list", st)
}

// Notification renders one notification.
func (r *Renderer) Notification(n models.Notification) (string, error) {
	return r.render("notification", n)
}

// Notifications renders the whole notification region.
func (r *Renderer) Notifications(list []models.Notification) (string, error) {
	return r.render("notifications", list)
}

// Loading renders the loading indicator.
func (r *Renderer) Loading(st ui.LoadingState) (string, error) {
	return r.render("loading", st)
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
