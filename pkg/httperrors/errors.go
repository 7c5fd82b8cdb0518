package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/blob_lite/internal/models"
)

// Status сопоставляет ошибку сервиса с HTTP-статусом.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Write отвечает статусом по ошибке. 404 уходит без тела, 5xx — без подробностей,
// чтобы не светить пути на диске.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	switch {
	case status == http.StatusNotFound:
		w.WriteHeader(status)
	case status >= http.StatusInternalServerError:
		http.Error(w, http.StatusText(status), status)
	default:
		http.Error(w, err.Error(), status)
	}
}
