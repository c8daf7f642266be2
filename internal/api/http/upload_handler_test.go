package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rental-dashboard/internal/domain"
)

// workbookUploadRequest builds a multipart request carrying a workbook
// in the admin sheet layout (five title rows, then data).
func workbookUploadRequest(t *testing.T, target string, dataRows [][]interface{}) *http.Request {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "DATA SEWA MESIN"))
	for i, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, 6+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var workbook bytes.Buffer
	require.NoError(t, f.Write(&workbook))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "import.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadCreate(t *testing.T) {
	rentalSvc := new(MockRentalService)
	h := NewUploadHandler(rentalSvc)

	rentalSvc.On("BulkCreate", mock.Anything, mock.MatchedBy(func(records []domain.RentalRecord) bool {
		return len(records) == 1 && records[0].TID == "T001"
	})).Return(1, nil).Once()

	req := workbookUploadRequest(t, "/rental/upload/create", [][]interface{}{
		{"1", "ATM", "T001", "KC Jakarta", "Jakarta"},
	})
	rec := httptest.NewRecorder()
	h.UploadCreate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Created 1 new rental records.", decodeBody(t, rec)["message"])
	rentalSvc.AssertExpectations(t)
}

func TestUploadUpdate(t *testing.T) {
	rentalSvc := new(MockRentalService)
	h := NewUploadHandler(rentalSvc)

	rentalSvc.On("BulkUpdate", mock.Anything, mock.Anything).Return(2, nil).Once()

	req := workbookUploadRequest(t, "/rental/upload/update", [][]interface{}{
		{"1", "ATM", "T001", "KC Jakarta", "Jakarta"},
		{"2", "CRM", "T002", "KC Bandung", "Bandung"},
	})
	rec := httptest.NewRecorder()
	h.UploadUpdate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated 2 existing rental records.", decodeBody(t, rec)["message"])
}

func TestUploadCreateRejectsMissingFile(t *testing.T) {
	h := NewUploadHandler(new(MockRentalService))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/rental/upload/create", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", decodeBody(t, rec)["detail"])
}
