package api

import (
	"encoding/json"
	"net/http"

	"github.com/hazyhaar/crmclean/pkg/kit"
	"github.com/hazyhaar/crmclean/pkg/schema"
)

// NewRouter returns an http.Handler with all crmclean API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		cleanRows:   cleanRowsEndpoint(svc),
		listSchemas: listSchemasEndpoint(svc),
	}

	mux.HandleFunc("GET /v1/clean/{kind}", methodNotAllowed)
	mux.HandleFunc("POST /v1/clean/{kind}", h.handleCleanRows)
	mux.HandleFunc("GET /v1/schemas", h.handleListSchemas)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	cleanRows   kit.Endpoint
	listSchemas kit.Endpoint
}

// --- clean rows ---

type httpCleanRequest struct {
	Rows []map[string]string `json:"rows"`
}

func (h *handler) handleCleanRows(w http.ResponseWriter, r *http.Request) {
	kind, err := schema.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 8<<20) // 8 MiB max
	var req httpCleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := kit.WithTransport(r.Context(), "http")
	resp, err := h.cleanRows(ctx, &cleanRowsReq{Kind: kind, Rows: req.Rows})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- schemas ---

func (h *handler) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listSchemas(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
	Kinds  int    `json:"kinds"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Kinds: len(schema.Kinds())})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
