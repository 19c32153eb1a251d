package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"chamaweb/internal/adapters/api"
	"chamaweb/internal/adapters/http/middleware"
)

const templatesDir = "internal/adapters/http/templates"

// contentDir holds markdown page content (landing copy). Set by NewMux.
var contentDir = "content"

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.SessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.User.Role
		name = sess.User.FullName()
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return role != "" },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// endSession converts an unauthorized API response into the one place that
// clears the session: the row is deleted, the cookie removed, and the user
// returned to the auth page. Every screen routes its errors through
// apiErrorMessage so this never has to be repeated per screen.
func endSession(w http.ResponseWriter, r *http.Request) {
	if id := middleware.SessionCookieID(r); id != "" {
		if err := deps.Sessions.Delete(r.Context(), id); err != nil {
			slog.Error("session_delete_failed", "error", err.Error())
		}
	}
	middleware.ClearSessionCookie(w)
	slog.Info("auth_event", "event", "session_cleared")
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// apiErrorMessage maps an API error onto an inline page message. For
// 401/403 it ends the session instead and reports handled=true, in which
// case the caller must return without writing anything further.
func apiErrorMessage(w http.ResponseWriter, r *http.Request, err error) (msg string, handled bool) {
	if errors.Is(err, api.ErrUnauthorized) {
		endSession(w, r)
		return "", true
	}
	return err.Error(), false
}
