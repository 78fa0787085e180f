package web

// errors.go maps pipeline errors onto HTTP responses. Parse and schema
// problems are the client's to fix (400); limiter exhaustion asks the
// client to retry (429); anything else is a 500 with the detail kept in
// the server log.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elias3446/reportes-ciudadanos/internal/importer"
	"github.com/elias3446/reportes-ciudadanos/internal/logging"
	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// respondError classifies an error from the pipeline and writes the
// matching response, logging the technical detail server-side.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())

	var parseErr *importer.ParseError
	var schemaErr *schema.SchemaError

	switch {
	case errors.As(err, &schemaErr):
		log.Warn("request rejected", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, schemaErr.Error(), "unknown_entity")

	case errors.As(err, &parseErr):
		log.Warn("request rejected", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, parseErr.Error(), "parse_error")

	case errors.Is(err, importer.ErrTooManyImports):
		log.Warn("import slot unavailable", "path", r.URL.Path)
		writeError(w, http.StatusTooManyRequests, err.Error(), "too_many_imports")

	default:
		log.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "internal")
	}
}
