package resthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sir_venger/blob_lite/pkg/httperrors"
	log "github.com/sirupsen/logrus"
)

// writeError логирует ошибку операции и отвечает статусом по её виду.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := httperrors.Status(err)
	entry := s.Log.WithFields(log.Fields{
		"op":         op,
		"status":     status,
		"request_id": middleware.GetReqID(r.Context()),
		"err":        err,
	})
	if id := chi.URLParam(r, "id"); id != "" {
		entry = entry.WithField("id", id)
	}

	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	httperrors.Write(w, err)
}
