package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"website-mcp-server/internal/domain"
)

// HTTPFront is the HTTP transport. Unlike a streaming transport it is
// fully synchronous: POST /mcp returns the JSON-RPC response in the HTTP
// body, and notifications get an empty 200.
//
// It also exposes the legacy REST endpoint POST /api/createWebsite, which
// bypasses JSON-RPC and calls the website pipeline directly.
type HTTPFront struct {
	host    string
	port    int
	server  *http.Server
	handler domain.MessageHandler
	website *WebsiteHandler
	config  *domain.Config
	logger  *StructuredLogger
}

// NewHTTPFront creates the HTTP transport over the given dispatcher.
func NewHTTPFront(config *domain.Config, handler domain.MessageHandler, website *WebsiteHandler) *HTTPFront {
	return &HTTPFront{
		host:    config.Transport.HTTP.Host,
		port:    config.Transport.HTTP.Port,
		handler: handler,
		website: website,
		config:  config,
		logger:  NewStructuredLogger(),
	}
}

// Handler returns the full route table wrapped in the CORS and logging
// middleware. Exposed so tests can drive it through httptest.
func (f *HTTPFront) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", f.handleRoot)
	mux.HandleFunc("/mcp.json", f.handleMetadata)
	mux.HandleFunc("/mcp", f.handleMCP)
	mux.HandleFunc("/api/createWebsite", f.handleCreateWebsite)

	return f.withCORS(f.withRequestLog(mux))
}

// Start begins serving HTTP and shuts down when the context is cancelled.
func (f *HTTPFront) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", f.host, f.port)
	f.server = &http.Server{
		Addr:    addr,
		Handler: f.Handler(),
	}

	go func() {
		if err := f.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			f.logger.LogError("http server stopped", err, map[string]interface{}{"addr": addr})
		}
	}()

	go func() {
		<-ctx.Done()
		f.Close()
	}()

	return nil
}

// Close gracefully shuts down the HTTP server.
func (f *HTTPFront) Close() error {
	if f.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return f.server.Shutdown(ctx)
}

// withCORS applies permissive CORS headers to every route and
// short-circuits OPTIONS preflight with an empty 200.
func (f *HTTPFront) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRequestLog logs every request with a correlation id.
func (f *HTTPFront) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.logger.LogInfo("http request", map[string]interface{}{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
		})
		next.ServeHTTP(w, r)
	})
}

// handleRoot serves discovery metadata on GET / and the JSON 404 for
// every unmatched path (the root pattern is the mux catch-all).
func (f *HTTPFront) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Endpoint not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, f.discoveryMetadata())
}

// handleMetadata serves the same discovery document on GET /mcp.json.
func (f *HTTPFront) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.discoveryMetadata())
}

// discoveryMetadata describes the server for non-JSON-RPC clients.
func (f *HTTPFront) discoveryMetadata() map[string]interface{} {
	return map[string]interface{}{
		"name":            f.config.Server.Name,
		"version":         f.config.Server.Version,
		"protocolVersion": protocolVersion,
		"description":     "MCP server exposing search, fetch and createWebsite tools",
		"endpoints": map[string]interface{}{
			"mcp":           "/mcp",
			"createWebsite": "/api/createWebsite",
		},
		"tools": []string{ToolSearch, ToolFetch, ToolCreateWebsite},
	}
}

// handleMCP serves the JSON-RPC transport. GET returns a help payload;
// POST dispatches the message and relays the response body verbatim.
func (f *HTTPFront) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "POST JSON-RPC 2.0 messages to this endpoint",
			"methods": []string{"initialize", "initialized", "tools/list", "ping", "tools/call"},
		})
	case http.MethodPost:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "Failed to read request body",
			})
			return
		}
		defer r.Body.Close()

		out := f.handler.HandleMessage(r.Context(), body)
		if out == nil {
			// Notification: 200 with no JSON body.
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(out)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"success": false,
			"message": "Method not allowed",
		})
	}
}

// createWebsiteRequest is the JSON request body for POST /api/createWebsite.
type createWebsiteRequest struct {
	SiteName string `json:"site_name"`
	Theme    string `json:"theme"`
	Domain   string `json:"domain,omitempty"`
}

// handleCreateWebsite is the legacy REST path. It mirrors the
// createWebsite tool: 400 for missing fields, 500 for pipeline failures.
func (f *HTTPFront) handleCreateWebsite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"success": false,
			"message": "Method not allowed",
		})
		return
	}

	var req createWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	if req.SiteName == "" || req.Theme == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "site_name and theme are required",
		})
		return
	}

	spec := domain.SiteSpec{SiteName: req.SiteName, Theme: req.Theme, Domain: req.Domain}
	result, err := f.website.Create(r.Context(), spec)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to create website",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"siteUrl": result.URL,
	})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
