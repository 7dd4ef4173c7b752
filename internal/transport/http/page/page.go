package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	domain "hradmin/internal/domain/shared"
	"hradmin/internal/requestctx"
	"hradmin/internal/transport/http/api"
	"hradmin/internal/transport/http/shared"
)

type Props map[string]any

// Page is the object a client side router hydrates from.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

var shell = template.Must(template.New("app").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>HR Admin</title>
<script type="module" src="{{.AssetURL}}"></script>
</head>
<body>
<div id="app" data-page="{{.Page}}"></div>
</body>
</html>
`))

// Renderer answers page requests either as the page object (for client side
// visits) or as the HTML shell that boots the client.
type Renderer struct {
	Version  string
	AssetURL string
}

func New(version, assetURL string) *Renderer {
	return &Renderer{Version: version, AssetURL: assetURL}
}

// WantsJSON reports a plain API client: one that accepts JSON or sends
// X-Requested-With, and is not a page visit.
func WantsJSON(r *http.Request) bool {
	if r.Header.Get("X-Inertia") == "true" {
		return false
	}
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	accept := strings.ToLower(r.Header.Get("Accept"))
	return strings.Contains(accept, "/json") || strings.Contains(accept, "+json")
}

// Wants reports whether r should be answered with a page.
func (rd *Renderer) Wants(r *http.Request) bool {
	return rd != nil && !WantsJSON(r)
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, component string, props Props) {
	rd.RenderStatus(w, r, http.StatusOK, component, props)
}

func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request, message string) {
	rd.RenderStatus(w, r, http.StatusNotFound, "errors/not-found", Props{"message": message})
}

func (rd *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, component string, props Props) {
	if props == nil {
		props = Props{}
	}
	pg := Page{Component: component, Props: props, URL: r.URL.RequestURI(), Version: rd.Version}

	w.Header().Add("Vary", "X-Inertia")
	if r.Header.Get("X-Inertia") == "true" {
		if r.Method == http.MethodGet && r.Header.Get("X-Inertia-Version") != rd.Version {
			w.Header().Set("X-Inertia-Location", pg.URL)
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.Header().Set("X-Inertia", "true")
		api.WriteJSON(w, status, pg)
		return
	}

	encoded, err := json.Marshal(pg)
	if err != nil {
		requestctx.Logger(r.Context()).Error("encode page failed", zap.String("component", component), zap.Error(err))
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := shell.Execute(&buf, struct {
		AssetURL string
		Page     string
	}{AssetURL: rd.AssetURL, Page: string(encoded)}); err != nil {
		requestctx.Logger(r.Context()).Error("render page failed", zap.String("component", component), zap.Error(err))
		http.Error(w, "Server error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error answers a failed request. Missing records on page GETs get the not
// found page; everything else goes through the JSON error mapping.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if rd.Wants(r) && r.Method == http.MethodGet && errors.Is(err, domain.ErrNotFound) {
		rd.NotFound(w, r, notFound)
		return
	}
	shared.WriteError(w, r, err, notFound)
}
