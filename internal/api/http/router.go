package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface. Login, register and file downloads
// are open; everything else requires a bearer token.
func NewRouter(authHandler *AuthHandler, uploadHandler *UploadHandler, fileHandler *FileHandler, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	router.HandleFunc("/auth/data", auth.Wrap(authHandler.Data)).Methods("GET")
	router.HandleFunc("/auth/add-row", auth.Wrap(authHandler.AddRow)).Methods("POST")
	router.HandleFunc("/auth/edit-cell", auth.Wrap(authHandler.EditCell)).Methods("PATCH")
	router.HandleFunc("/auth/upload-pdf", auth.Wrap(authHandler.UploadPDF)).Methods("POST")
	router.HandleFunc("/auth/delete-row", auth.Wrap(authHandler.DeleteRow)).Methods("DELETE")
	router.HandleFunc("/auth/batch-delete", auth.Wrap(authHandler.BatchDelete)).Methods("POST")

	router.HandleFunc("/rental/upload/create", auth.Wrap(uploadHandler.UploadCreate)).Methods("POST")
	router.HandleFunc("/rental/upload/update", auth.Wrap(uploadHandler.UploadUpdate)).Methods("POST")

	router.HandleFunc("/files/{key}", fileHandler.Download).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	return router
}
