// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view renders the server-side HTML pages.

Every page template is parsed together with the shared layout at startup and
executed into a buffer, so a template failure never leaves a half-written page.
Templates and static assets are embedded into the binary.

Page data is supplied by the handlers as a [Page]: the layout reads Title and
Username, the page body reads Data.
*/
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/enredo/internal/platform/ctxutil"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// # Page Names

const (
	PageIndex       = "index"
	PageReader      = "reader"
	PageMessage     = "message"
	PageLogin       = "login"
	PageAdmin       = "admin"
	PageStoryForm   = "story_form"
	PageChapters    = "chapters"
	PageChapterForm = "chapter_form"
	PageChoices     = "choices"
	PageError       = "error"
	PageNotFound    = "not_found"
)

// Page is the value every template executes against.
type Page struct {
	Title    string
	Username string
	Data     any
}

// NewPage builds a [Page], picking the administrator name from the request context.
func NewPage(request *http.Request, title string, data any) Page {
	page := Page{Title: title, Data: data}
	if principal := ctxutil.GetPrincipal(request.Context()); principal != nil {
		page.Username = principal.Username
	}
	return page
}

// ErrorData is the body of the generic failure page.
type ErrorData struct {
	Status  int
	Message string
	Detail  string
}

// MessageData is the body of the informational page (e.g. a story without chapters).
type MessageData struct {
	Message   string
	Link      string
	LinkLabel string
}

// Renderer executes parsed page templates.
type Renderer struct {
	pages        map[string]*template.Template
	exposeErrors bool
}

// New parses the layout and every page template.
// exposeErrors controls whether failure pages include the underlying cause.
func New(exposeErrors bool) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("view: failed to parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: failed to list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}

		// Each page gets its own copy of the layout so "content" blocks don't collide
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("view: failed to clone layout: %w", err)
		}
		if _, err := clone.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("view: failed to parse %s: %w", file, err)
		}
		pages[name] = clone
	}

	return &Renderer{pages: pages, exposeErrors: exposeErrors}, nil
}

// Render executes page name with status.
func (renderer *Renderer) Render(writer http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := renderer.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var buffer bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buffer, "layout.html", page); err != nil {
		return fmt.Errorf("view: failed to render %s: %w", name, err)
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, err := buffer.WriteTo(writer)
	return err
}

// RenderError writes the generic failure page. detail is dropped unless errors are exposed.
// If the error template itself fails, a plain-text body is written instead.
func (renderer *Renderer) RenderError(writer http.ResponseWriter, status int, message, detail string) {
	if !renderer.exposeErrors {
		detail = ""
	}

	page := Page{
		Title: http.StatusText(status),
		Data:  ErrorData{Status: status, Message: message, Detail: detail},
	}

	if err := renderer.Render(writer, status, PageError, page); err != nil {
		http.Error(writer, message, status)
	}
}

// RenderNotFound writes the 404 page.
func (renderer *Renderer) RenderNotFound(writer http.ResponseWriter, request *http.Request) {
	page := NewPage(request, "Page not found", nil)
	if err := renderer.Render(writer, http.StatusNotFound, PageNotFound, page); err != nil {
		http.NotFound(writer, request)
	}
}

// Static serves the embedded stylesheet and images under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
