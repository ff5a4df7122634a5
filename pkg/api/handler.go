package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/hazyhaar/anunturi/pkg/dict"
	"github.com/hazyhaar/anunturi/pkg/kit"
)

// NewRouter returns an http.Handler with all announcement API routes. When
// mcpHandler is non-nil it is mounted at /mcp.
func NewRouter(svc *Service, logger *slog.Logger, mcpHandler http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	h := &handler{ep: newEndpoints(svc, logger), svc: svc}

	mux.HandleFunc("GET /v1/articles", h.handleFilter)
	mux.HandleFunc("POST /v1/articles", h.handleUpsert)
	mux.HandleFunc("GET /v1/articles/{id}", h.handleArticle)
	mux.HandleFunc("DELETE /v1/articles/{id}", h.handleDelete)
	mux.HandleFunc("POST /v1/highlight", h.handleHighlight)
	mux.HandleFunc("GET /v1/terms", h.handleTerms)
	mux.HandleFunc("GET /v1/terms/{term}", h.handleExplain)
	mux.HandleFunc("GET /v1/catalogs", h.handleCatalogs)
	mux.HandleFunc("GET /v1/filters", h.handleFilters)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	if mcpHandler != nil {
		mux.Handle("/mcp", mcpHandler)
	}

	return cors(requestID(mux))
}

type handler struct {
	ep  *endpoints
	svc *Service
}

// --- articles ---

func (h *handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.serve(w, r, h.ep.filter, &filterReq{Criteria: article.Criteria{
		Query:        q.Get("q"),
		DocumentType: q.Get("type"),
		Subject:      q.Get("subject"),
	}})
}

func (h *handler) handleArticle(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.article, &articleReq{
		ID:      r.PathValue("id"),
		Catalog: r.URL.Query().Get("catalog"),
	})
}

type httpUpsertRequest struct {
	article.Article
	AsNew bool `json:"as_new"`
}

func (h *handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req httpUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	a := req.Article
	h.serve(w, r, h.ep.upsert, &upsertReq{Article: &a, AsNew: req.AsNew})
}

func (h *handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.remove, &deleteReq{ID: r.PathValue("id")})
}

// --- highlighting ---

func (h *handler) handleHighlight(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxHighlightBytes+4096)
	var req highlightReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Catalog == "" {
		req.Catalog = r.URL.Query().Get("catalog")
	}
	h.serve(w, r, h.ep.highlight, &req)
}

func (h *handler) handleTerms(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.terms, &termsReq{Catalog: r.URL.Query().Get("catalog")})
}

func (h *handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.explain, &explainReq{
		Term:    r.PathValue("term"),
		Catalog: r.URL.Query().Get("catalog"),
	})
}

// --- metadata ---

func (h *handler) handleCatalogs(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.catalogs, nil)
}

func (h *handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.options, nil)
}

type healthResponse struct {
	Status   string `json:"status"`
	Catalogs int    `json:"catalogs"`
	Terms    int    `json:"terms"`
	Articles int    `json:"articles"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Articles.Count()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Catalogs: h.svc.Catalogs.CatalogCount(),
		Terms:    h.svc.Catalogs.TotalTerms(),
		Articles: n,
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	resp, err := ep(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, article.ErrNotFound),
		errors.Is(err, dict.ErrUnknownCatalog),
		errors.Is(err, errNoExplanation):
		return http.StatusNotFound
	case errors.Is(err, errInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID propagates the X-Request-ID header into the endpoint context and
// echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = kit.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), id)))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
