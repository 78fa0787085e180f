package importer

// importer.go implements the two-phase import protocol.
//
// Validate parses and validates without side effects, for preview. Commit
// re-parses and re-validates the same input (the two phases are consistent
// by construction), then forwards error-free records one by one to the
// entity store. A failure on one record never aborts the rest: batches
// have partial-success semantics and already-created records are not
// rolled back.

import (
	"context"
	"io"
	"log/slog"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// EntityStore is the collaborator that persists validated records. It is
// opaque to the pipeline: Create either returns the new entity's ID or an
// error explaining why this single record could not be created.
type EntityStore interface {
	Create(ctx context.Context, entity schema.EntityType, values map[string]schema.Value) (string, error)
}

// Phase tracks where an import run is in its lifecycle.
type Phase string

const (
	PhaseParsing    Phase = "parsing"
	PhaseValidating Phase = "validating"
	PhaseCommitting Phase = "committing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
	PhaseCancelled  Phase = "cancelled"
)

// Preview is the side-effect-free result of the validate phase.
type Preview struct {
	Records []Record     `json:"records"`
	Errors  []FieldError `json:"errors"`
}

// FailedRecord is a record that could not be committed, annotated with
// the reason. The original field values are preserved for correction.
type FailedRecord struct {
	Record
	Reason string `json:"error"`
}

// Result is the outcome of a commit: every input record lands in exactly
// one partition, in row order, and Total = len(Success) + len(Failed).
type Result struct {
	Success []Record       `json:"successRecords"`
	Failed  []FailedRecord `json:"failedRecords"`
	Total   int            `json:"total"`
}

// fallbackReason annotates records the store rejected without a message.
const fallbackReason = "no se pudo crear el registro"

// Importer orchestrates the import pipeline. Each run is stateless with
// respect to prior runs; the entity store is the only shared resource.
type Importer struct {
	store EntityStore
	log   *slog.Logger
}

// New creates an Importer backed by the given entity store.
func New(store EntityStore) *Importer {
	return &Importer{store: store, log: slog.Default()}
}

// prepare runs the parsing and validation phases shared by both entry points.
func (imp *Importer) prepare(r io.Reader, format Format, entity schema.EntityType) ([]schema.Field, []Record, []FieldError, error) {
	fields, err := schema.Fields(entity)
	if err != nil {
		return nil, nil, nil, err
	}

	records, err := ReadRecords(r, format, fields)
	if err != nil {
		return nil, nil, nil, err
	}

	return fields, records, ValidateRecords(records, fields), nil
}

// Validate parses and validates an import file for preview. It never
// touches the entity store. Parse failures and unknown entity types are
// fatal; field errors are returned as data.
func (imp *Importer) Validate(ctx context.Context, r io.Reader, format Format, entity schema.EntityType) (*Preview, error) {
	log := imp.log.With("entity", entity, "format", format)

	log.Debug("import preview", "phase", PhaseParsing)
	_, records, errs, err := imp.prepare(r, format, entity)
	if err != nil {
		log.Warn("import preview failed", "phase", PhaseFailed, "error", err)
		return nil, err
	}

	log.Info("import preview", "phase", PhaseValidating, "records", len(records), "field_errors", len(errs))
	return &Preview{Records: records, Errors: errs}, nil
}

// Commit parses, validates, and forwards error-free records to the entity
// store in row order. Records with validation errors fail with all their
// messages joined; store rejections fail individually without stopping the
// batch. Cancellation is checked between records and returns the partial
// result accumulated so far along with ctx.Err().
func (imp *Importer) Commit(ctx context.Context, r io.Reader, format Format, entity schema.EntityType) (*Result, error) {
	log := imp.log.With("entity", entity, "format", format)

	log.Debug("import commit", "phase", PhaseParsing)
	_, records, errs, err := imp.prepare(r, format, entity)
	if err != nil {
		log.Warn("import commit failed", "phase", PhaseFailed, "error", err)
		return nil, err
	}

	byRow := ErrorsByRow(errs)
	result := &Result{}

	log.Info("import commit", "phase", PhaseCommitting, "records", len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			result.Total = len(result.Success) + len(result.Failed)
			log.Warn("import commit interrupted", "phase", PhaseCancelled,
				"created", len(result.Success), "failed", len(result.Failed))
			return result, err
		}

		if rowErrs := byRow[rec.RowIndex]; len(rowErrs) > 0 {
			result.Failed = append(result.Failed, FailedRecord{Record: rec, Reason: joinErrors(rowErrs)})
			continue
		}

		id, err := imp.store.Create(ctx, entity, rec.Values)
		switch {
		case err != nil:
			reason := err.Error()
			if reason == "" {
				reason = fallbackReason
			}
			result.Failed = append(result.Failed, FailedRecord{Record: rec, Reason: reason})
		case id == "":
			result.Failed = append(result.Failed, FailedRecord{Record: rec, Reason: fallbackReason})
		default:
			result.Success = append(result.Success, rec)
		}
	}

	result.Total = len(result.Success) + len(result.Failed)
	log.Info("import commit", "phase", PhaseCompleted,
		"created", len(result.Success), "failed", len(result.Failed), "total", result.Total)

	return result, nil
}
