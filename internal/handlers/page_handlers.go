// File: internal/handlers/page_handlers.go
package handlers

import (
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/avasilyev/geminichat/internal/middleware"
)

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	for _, tmpl := range []string{"login.html", "chat.html"} {
		ts, err := template.ParseFiles("web/templates/" + tmpl)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}
		templateCache[tmpl] = ts
	}
}

func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if err := t.Execute(w, data); err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// ShowIndexPage sends the browser to the chat when a session exists and to
// the login page otherwise.
func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	if middleware.Username(r.Context()) != "" {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLoginPage renders the login form; an authenticated browser is sent
// straight to the chat.
func (h *PageHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.Username(r.Context()) != "" {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	renderTemplate(w, "login.html", nil)
}

// ShowChatPage renders the chat UI for the authenticated user.
func (h *PageHandler) ShowChatPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "chat.html", map[string]interface{}{
		"Username": middleware.Username(r.Context()),
	})
}
