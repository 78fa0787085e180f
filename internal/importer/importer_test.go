package importer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/elias3446/reportes-ciudadanos/internal/schema"
)

// fakeStore records Create calls and fails the rows whose nombre value is
// listed in failOn.
type fakeStore struct {
	created []map[string]schema.Value
	failOn  map[string]error
	emptyID bool
}

func (s *fakeStore) Create(_ context.Context, _ schema.EntityType, values map[string]schema.Value) (string, error) {
	nombre := values["nombre"].String()
	if err, ok := s.failOn[nombre]; ok {
		return "", err
	}
	s.created = append(s.created, values)
	if s.emptyID {
		return "", nil
	}
	return fmt.Sprintf("id-%d", len(s.created)), nil
}

const categoriasCSV = "nombre,descripcion,color\n" +
	"Alumbrado,Fallas de luz,#FFAA00\n" +
	"Baches,,#333333\n" +
	"Ruido,Quejas de ruido,#00AA00\n" +
	"Basura,Recolección,#AA0000\n"

func TestCommit_PartialFailureIsolation(t *testing.T) {
	store := &fakeStore{failOn: map[string]error{"Ruido": errors.New("disco lleno")}}
	imp := New(store)

	result, err := imp.Commit(context.Background(), strings.NewReader(categoriasCSV), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	if len(result.Success) != 3 || len(result.Failed) != 1 || result.Total != 4 {
		t.Fatalf("result = %d success, %d failed, total %d; want 3/1/4",
			len(result.Success), len(result.Failed), result.Total)
	}
	if result.Failed[0].Values["nombre"].String() != "Ruido" {
		t.Errorf("failed record = %q, want Ruido", result.Failed[0].Values["nombre"].String())
	}
	if result.Failed[0].Reason != "disco lleno" {
		t.Errorf("failure reason = %q, want store error text", result.Failed[0].Reason)
	}

	// Row order is preserved within each partition.
	gotOrder := []string{}
	for _, rec := range result.Success {
		gotOrder = append(gotOrder, rec.Values["nombre"].String())
	}
	wantOrder := []string{"Alumbrado", "Baches", "Basura"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("success order = %v, want %v", gotOrder, wantOrder)
	}
}

func TestCommit_InvalidRecordsNeverReachStore(t *testing.T) {
	csvData := "nombre,descripcion,color\n" +
		"Alumbrado,,#FFAA00\n" +
		",sin nombre,naranja\n"

	store := &fakeStore{}
	imp := New(store)

	result, err := imp.Commit(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	if len(store.created) != 1 {
		t.Errorf("store received %d records, want 1", len(store.created))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed = %v, want one record", result.Failed)
	}

	// The reason joins every field error in field-definition order.
	want := "nombre: es requerido; color: debe ser un color hexadecimal (#RRGGBB)"
	if result.Failed[0].Reason != want {
		t.Errorf("reason = %q, want %q", result.Failed[0].Reason, want)
	}
}

func TestCommit_EmptyStoreResponsesGetFallbackReason(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{name: "empty id", store: &fakeStore{emptyID: true}},
		{name: "empty error message", store: &fakeStore{failOn: map[string]error{"Alumbrado": errors.New("")}}},
	}

	csvData := "nombre\nAlumbrado\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(tt.store).Commit(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
			if err != nil {
				t.Fatalf("Commit error = %v", err)
			}
			if len(result.Failed) != 1 {
				t.Fatalf("failed = %v, want one record", result.Failed)
			}
			if result.Failed[0].Reason != "no se pudo crear el registro" {
				t.Errorf("reason = %q, want fallback", result.Failed[0].Reason)
			}
		})
	}
}

func TestValidate_NeverTouchesStore(t *testing.T) {
	store := &fakeStore{}
	imp := New(store)

	preview, err := imp.Validate(context.Background(), strings.NewReader(categoriasCSV), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("Validate error = %v", err)
	}

	if len(store.created) != 0 {
		t.Errorf("preview created %d records", len(store.created))
	}
	if len(preview.Records) != 4 || len(preview.Errors) != 0 {
		t.Errorf("preview = %d records, %d errors; want 4, 0", len(preview.Records), len(preview.Errors))
	}
}

func TestValidate_Idempotent(t *testing.T) {
	csvData := "nombre,color\nAlumbrado,naranja\n,\n"
	imp := New(&fakeStore{})

	first, err := imp.Validate(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("first Validate error = %v", err)
	}
	second, err := imp.Validate(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("second Validate error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated previews differ:\n%+v\n%+v", first, second)
	}
}

func TestCommit_AgreesWithValidate(t *testing.T) {
	// Records the preview reports as error-free are exactly the ones a
	// commit of the same input hands to the store.
	csvData := "nombre,color\n" +
		"Alumbrado,#FFAA00\n" +
		"Baches,naranja\n" +
		"Ruido,#00AA00\n"
	imp := New(&fakeStore{})

	preview, err := imp.Validate(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	result, err := imp.Commit(context.Background(), strings.NewReader(csvData), FormatCSV, schema.EntityCategorias)
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	cleanRows := map[int]bool{}
	for _, rec := range preview.Records {
		cleanRows[rec.RowIndex] = true
	}
	for _, e := range preview.Errors {
		delete(cleanRows, e.Row)
	}

	if len(result.Success) != len(cleanRows) {
		t.Errorf("committed %d records, preview predicted %d", len(result.Success), len(cleanRows))
	}
	for _, rec := range result.Success {
		if !cleanRows[rec.RowIndex] {
			t.Errorf("row %d committed but preview flagged it", rec.RowIndex)
		}
	}
}

func TestCommit_UnknownEntityFails(t *testing.T) {
	imp := New(&fakeStore{})

	_, err := imp.Commit(context.Background(), strings.NewReader("a,b\n1,2\n"), FormatCSV, schema.EntityType("facturas"))

	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want *schema.SchemaError", err)
	}
}

func TestCommit_CancellationReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel after the second successful create.
	store := &cancellingStore{cancel: cancel, after: 2}
	imp := New(store)

	result, err := imp.Commit(ctx, strings.NewReader(categoriasCSV), FormatCSV, schema.EntityCategorias)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Fatal("result = nil, want the partial result")
	}
	if len(result.Success) != 2 {
		t.Errorf("partial success = %d, want 2", len(result.Success))
	}
	if result.Total != len(result.Success)+len(result.Failed) {
		t.Errorf("total = %d, want %d", result.Total, len(result.Success)+len(result.Failed))
	}
}

type cancellingStore struct {
	cancel  context.CancelFunc
	after   int
	created int
}

func (s *cancellingStore) Create(context.Context, schema.EntityType, map[string]schema.Value) (string, error) {
	s.created++
	if s.created == s.after {
		s.cancel()
	}
	return fmt.Sprintf("id-%d", s.created), nil
}
