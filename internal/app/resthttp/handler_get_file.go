package resthttp

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sir_venger/blob_lite/internal/models"
	"github.com/sir_venger/blob_lite/pkg/blobproto"
)

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		s.writeError(w, r, "retrieve", err)
		return
	}

	data, err := s.FilesService.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "retrieve", err)
		return
	}

	w.Header().Set("Content-Type", blobproto.ContentTypeOctetStream)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		s.Log.WithField("err", err).Debug("client went away during download")
	}
}

// fileID разбирает {id} из пути как UUID.
func fileID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, models.BadRequest("invalid file id %q", raw)
	}

	return id, nil
}
