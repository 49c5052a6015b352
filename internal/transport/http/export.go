package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/export"
)

// RowExporter is the minimal interface for the export endpoint.
type RowExporter interface {
	Rows(ctx context.Context, eventID string) ([]app.ExportRow, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleExport streams the event's attendance sheet as an .xlsx download.
func HandleExport(svc RowExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.PathValue("id")
		rows, err := svc.Rows(r.Context(), eventID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		// Buffer the workbook so a render failure can still produce a
		// clean error response.
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rows); err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "registrations-"+eventID+".xlsx"))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
