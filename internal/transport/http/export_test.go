package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type stubExporter struct {
	rows []app.ExportRow
	err  error
}

func (s *stubExporter) Rows(context.Context, string) ([]app.ExportRow, error) {
	return s.rows, s.err
}

func TestHandleExport(t *testing.T) {
	t.Parallel()

	t.Run("serves a workbook download", func(t *testing.T) {
		t.Parallel()

		svc := &stubExporter{rows: []app.ExportRow{
			{Name: "Aditi Rao", Email: "aditi@example.com", Course: "ECE", Year: "2",
				Day1: app.StatusPresent, Day2: app.StatusAbsent, Day3: app.StatusAbsent},
		}}
		req := httptest.NewRequest(http.MethodGet, "/admin/events/event-1/export", nil)
		req.SetPathValue("id", "event-1")
		rec := httptest.NewRecorder()

		HandleExport(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
			t.Fatalf("unexpected content type %q", got)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "registrations-event-1.xlsx") {
			t.Fatalf("unexpected disposition %q", got)
		}

		f, err := excelize.OpenReader(rec.Body)
		if err != nil {
			t.Fatalf("reopen workbook: %v", err)
		}
		defer f.Close()
		cell, err := f.GetCellValue("Registrations", "A2")
		if err != nil {
			t.Fatalf("read cell: %v", err)
		}
		if cell != "Aditi Rao" {
			t.Fatalf("expected first attendee, got %q", cell)
		}
	})

	t.Run("unknown event is 404", func(t *testing.T) {
		t.Parallel()

		svc := &stubExporter{err: domain.ErrInvalidID}
		req := httptest.NewRequest(http.MethodGet, "/admin/events/bad/export", nil)
		req.SetPathValue("id", "bad")
		rec := httptest.NewRecorder()

		HandleExport(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
