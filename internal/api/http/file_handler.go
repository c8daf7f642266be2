package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"rental-dashboard/internal/storage"
)

// FileHandler serves stored attachments. The dashboard opens these URLs
// in a new browser tab, so downloads carry no bearer token and stay
// unauthenticated.
type FileHandler struct {
	store storage.StorageInterface
}

func NewFileHandler(store storage.StorageInterface) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		writeDetail(w, http.StatusBadRequest, "Missing file name")
		return
	}

	file, err := h.store.ReadFile(r.Context(), key)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	if filepath.Ext(key) == ".pdf" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, file)
}
