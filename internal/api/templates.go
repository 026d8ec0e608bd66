// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tomtom215/learnmate/internal/logging"
	"github.com/tomtom215/learnmate/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names.
const (
	pageLogin     = "login"
	pageRegister  = "register"
	pageDashboard = "dashboard"
)

// pageData is the model every page template renders from.
type pageData struct {
	// Username is the signed-in user; empty on public pages.
	Username string

	Error        string
	Notice       string
	FormUsername string
	Interests    string

	Recommendations []models.Recommendation
}

// pageRenderer holds one parsed template set per page, each joined with the layout.
type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	pr := &pageRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageLogin, pageRegister, pageDashboard} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pr.pages[name] = tmpl
	}
	return pr, nil
}

// render executes a page into a buffer first so template errors never
// produce a half-written response.
func (pr *pageRenderer) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	tmpl, ok := pr.pages[page]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	//nolint:errcheck // response already committed
	w.Write(buf.Bytes())
}

// StaticHandler serves the embedded stylesheet and chat script under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at build time; Sub only fails on an invalid name.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
