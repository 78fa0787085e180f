package web

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/elias3446/reportes-ciudadanos/internal/importer"
	"github.com/elias3446/reportes-ciudadanos/internal/schema"
	"github.com/go-chi/chi/v5"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// entityInfo is the introspection view of one entity schema.
type entityInfo struct {
	Entity string      `json:"entity"`
	Fields []fieldInfo `json:"fields"`
}

type fieldInfo struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

var fieldTypeNames = map[schema.FieldType]string{
	schema.FieldString: "string",
	schema.FieldNumber: "number",
	schema.FieldBool:   "boolean",
	schema.FieldDate:   "date",
	schema.FieldEmail:  "email",
	schema.FieldObject: "object",
}

// handleListEntities returns every entity type with its field contract,
// so clients can build upload forms and templates without hardcoding.
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	var infos []entityInfo
	for _, et := range schema.EntityTypes() {
		fields, err := schema.Fields(et)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		info := entityInfo{Entity: string(et)}
		for _, f := range fields {
			info.Fields = append(info.Fields, fieldInfo{
				Key:      f.Key,
				Label:    f.Label,
				Required: f.Required,
				Type:     fieldTypeNames[f.Type],
			})
		}
		infos = append(infos, info)
	}

	writeJSON(w, http.StatusOK, infos)
}

// handleDownloadTemplate serves a CSV or JSON input template generated
// from the entity's field definitions.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	entity, err := schema.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	switch format {
	case "", "csv":
		data, err := schema.CSVTemplate(entity)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="plantilla_`+string(entity)+`.csv"`)
		_, _ = w.Write(data)

	case "json":
		data, err := schema.JSONTemplate(entity)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="plantilla_`+string(entity)+`.json"`)
		_, _ = w.Write(data)

	default:
		writeError(w, http.StatusBadRequest, "format must be csv or json", "bad_format")
	}
}

// validateResponse wraps a preview with its counts.
type validateResponse struct {
	Records     []importer.Record     `json:"records"`
	Errors      []importer.FieldError `json:"errors"`
	Total       int                   `json:"total"`
	InvalidRows int                   `json:"invalidRows"`
}

// handleValidate runs the side-effect-free validate phase for preview.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	entity, err := schema.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	file, format, err := s.importFile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	preview, err := s.importer.Validate(r.Context(), file, format, entity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Records:     preview.Records,
		Errors:      preview.Errors,
		Total:       len(preview.Records),
		InvalidRows: len(importer.ErrorsByRow(preview.Errors)),
	})
}

// commitResponse wraps a commit result with its summary.
type commitResponse struct {
	importer.Result
	Summary importer.Summary `json:"summary"`
}

// handleCommit runs the commit phase, guarded by the concurrency limiter.
// Partial results are lost if the client disconnects mid-run; commits are
// deliberately small enough for that trade-off (see the file size limit).
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	entity, err := schema.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	file, format, err := s.importFile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	result, err := s.importer.Commit(r.Context(), file, format, entity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commitResponse{
		Result:  *result,
		Summary: importer.Summarize(result),
	})
}

// importFile extracts the uploaded file from the multipart form and
// resolves its format: an explicit "format" form value wins, otherwise
// the file extension decides (.json is JSON, anything else is CSV).
func (s *Server) importFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, importer.Format, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", &importer.ParseError{Format: "form", Err: err}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", &importer.ParseError{Format: "form", Err: err}
	}

	if raw := r.FormValue("format"); raw != "" {
		format, err := importer.ParseFormat(raw)
		if err != nil {
			file.Close()
			return nil, "", err
		}
		return file, format, nil
	}

	format := importer.FormatCSV
	if strings.EqualFold(filepath.Ext(header.Filename), ".json") {
		format = importer.FormatJSON
	}
	return file, format, nil
}
