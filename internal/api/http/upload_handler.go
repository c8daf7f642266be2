package http

import (
	"fmt"
	"net/http"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/logger"
	"rental-dashboard/internal/service"
	"rental-dashboard/internal/spreadsheet"
)

// UploadHandler serves the /rental/upload endpoints: bulk create and
// bulk update from an admin-supplied workbook.
type UploadHandler struct {
	rentalSvc service.RentalService
}

func NewUploadHandler(rentalSvc service.RentalService) *UploadHandler {
	return &UploadHandler{rentalSvc: rentalSvc}
}

func (h *UploadHandler) UploadCreate(w http.ResponseWriter, r *http.Request) {
	records, ok := h.parseWorkbook(w, r)
	if !ok {
		return
	}

	created, err := h.rentalSvc.BulkCreate(r.Context(), records)
	if err != nil {
		logger.Error("Bulk create failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to import records")
		return
	}
	writeMessage(w, fmt.Sprintf("Created %d new rental records.", created))
}

func (h *UploadHandler) UploadUpdate(w http.ResponseWriter, r *http.Request) {
	records, ok := h.parseWorkbook(w, r)
	if !ok {
		return
	}

	updated, err := h.rentalSvc.BulkUpdate(r.Context(), records)
	if err != nil {
		logger.Error("Bulk update failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to update records")
		return
	}
	writeMessage(w, fmt.Sprintf("Updated %d existing rental records.", updated))
}

// parseWorkbook pulls the multipart "file" field and parses it. On
// failure it writes the error response and returns ok=false.
func (h *UploadHandler) parseWorkbook(w http.ResponseWriter, r *http.Request) ([]domain.RentalRecord, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required")
		return nil, false
	}
	defer file.Close()

	records, err := spreadsheet.Parse(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse spreadsheet: %v", err))
		return nil, false
	}
	return records, true
}
