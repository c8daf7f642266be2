package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/logger"
	"rental-dashboard/internal/service"
)

// AuthHandler serves the /auth endpoints: account management plus the
// record CRUD surface the dashboard drives.
type AuthHandler struct {
	authSvc   service.AuthService
	rentalSvc service.RentalService
}

func NewAuthHandler(authSvc service.AuthService, rentalSvc service.RentalService) *AuthHandler {
	return &AuthHandler{
		authSvc:   authSvc,
		rentalSvc: rentalSvc,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := h.authSvc.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			writeDetail(w, http.StatusBadRequest, "Username already registered")
			return
		}
		logger.Error("Register failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	writeMessage(w, "User created successfully")
}

// Login accepts form-encoded credentials (OAuth2 password flow style)
// and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, user, err := h.authSvc.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeDetail(w, http.StatusBadRequest, "Incorrect username or password")
			return
		}
		logger.Error("Login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"username":     user.Username,
	})
}

func (h *AuthHandler) Data(w http.ResponseWriter, r *http.Request) {
	records, err := h.rentalSvc.ListRecords(r.Context())
	if err != nil {
		logger.Error("Failed to list rental records", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	if records == nil {
		records = []domain.RentalRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AuthHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	var rec domain.RentalRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.rentalSvc.AddRow(r.Context(), &rec); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequired):
			writeDetail(w, http.StatusBadRequest, "jenis_mesin, tid, kc_supervisi, and lokasi are required")
		case errors.Is(err, service.ErrRecordExists):
			writeDetail(w, http.StatusBadRequest, "Data already exists")
		default:
			logger.Error("Failed to add row", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to add row")
		}
		return
	}
	writeMessage(w, "New row added")
}

func (h *AuthHandler) EditCell(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tid := q.Get("tid")
	lokasi := q.Get("lokasi")
	field := q.Get("field")
	value := q.Get("value")
	if tid == "" || lokasi == "" || field == "" {
		writeDetail(w, http.StatusBadRequest, "tid, lokasi and field are required")
		return
	}

	if err := h.rentalSvc.EditCell(r.Context(), tid, lokasi, field, value); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidField):
			writeDetail(w, http.StatusBadRequest, "Invalid field name")
		case errors.Is(err, service.ErrRecordNotFound):
			writeDetail(w, http.StatusNotFound, "Data not found")
		default:
			logger.Error("Failed to edit cell", "tid", tid, "lokasi", lokasi, "field", field, "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to update cell")
		}
		return
	}
	writeMessage(w, fmt.Sprintf("%s updated successfully", field))
}

func (h *AuthHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tid := q.Get("tid")
	lokasi := q.Get("lokasi")
	if tid == "" || lokasi == "" {
		writeDetail(w, http.StatusBadRequest, "tid and lokasi are required")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	fileType := r.FormValue("file_type")
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
		writeDetail(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	err = h.rentalSvc.UploadPDF(r.Context(), tid, lokasi, domain.FileSlot(fileType), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFileSlot):
			writeDetail(w, http.StatusBadRequest, "Invalid file type")
		case errors.Is(err, service.ErrRecordNotFound):
			writeDetail(w, http.StatusNotFound, "Record not found")
		default:
			logger.Error("Failed to upload PDF", "tid", tid, "lokasi", lokasi, "error", err)
			writeDetail(w, http.StatusInternalServerError, "Failed to upload file")
		}
		return
	}
	writeMessage(w, fmt.Sprintf("PDF uploaded and linked to %s successfully", fileType))
}

func (h *AuthHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tid := q.Get("tid")
	lokasi := q.Get("lokasi")
	if tid == "" || lokasi == "" {
		writeDetail(w, http.StatusBadRequest, "tid and lokasi are required")
		return
	}

	if err := h.rentalSvc.DeleteRow(r.Context(), tid, lokasi); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			writeDetail(w, http.StatusNotFound, "Data not found")
			return
		}
		logger.Error("Failed to delete row", "tid", tid, "lokasi", lokasi, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to delete row")
		return
	}
	writeMessage(w, fmt.Sprintf("Data with TID '%s' and lokasi '%s' deleted successfully", tid, lokasi))
}

func (h *AuthHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var ids []int32
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deleted, err := h.rentalSvc.BatchDelete(r.Context(), ids)
	if err != nil {
		logger.Error("Batch delete failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to delete rows")
		return
	}
	writeMessage(w, fmt.Sprintf("%d record(s) deleted successfully", deleted))
}
