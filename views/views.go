// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/party"
)

// Page names
const (
	Index   = "index.html"
	Login   = "login.html"
	Results = "results.html"
	Success = "success.html"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
	"ordinal": humanize.Ordinal,
	"ranks": func() []int {
		ranks := make([]int, 0, models.LastRank-models.FirstRank+1)
		for r := models.FirstRank; r <= models.LastRank; r++ {
			ranks = append(ranks, r)
		}
		return ranks
	},
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{Index, Login, Results, Success} {
		pages[name] = template.Must(
			template.New(name).Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+name),
		)
	}
}

// IndexData feeds the ballot page.
type IndexData struct {
	User       models.User
	Candidates []party.Presentation
}

// LoginData feeds the login form.
type LoginData struct {
	Next  string
	Error string
}

// ResultsData feeds the results table.
type ResultsData struct {
	User    models.User
	Rows    []models.TallyRow
	Counted int
	Skipped int
}

// Render executes the named page into w. The page is rendered to a buffer
// first so a template error still produces a clean 500.
func Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := pages[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write response", "name", name, "error", err)
	}
}
