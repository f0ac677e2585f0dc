package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sooratali/TaskManager/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "login", "register", "task_form"}

type templates struct {
	pages map[string]*template.Template
}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (*templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &templates{pages: pages}, nil
}

// viewData is what every page receives.
type viewData struct {
	Title  string
	Flash  *Flash
	Tasks  []*models.Task
	Task   *models.Task
	Action string
}

func (t *templates) render(w http.ResponseWriter, name string, data viewData) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return page.ExecuteTemplate(w, "layout", data)
}
