package resthttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/sir_venger/blob_lite/internal/models"
	log "github.com/sirupsen/logrus"
)

// postFiles принимает multipart-тело и сохраняет первое поле. Остальные поля не читаются.
func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	if s.Cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadBytes)
	}

	name, data, err := readFirstField(r)
	if err != nil {
		s.writeError(w, r, "upload", err)
		return
	}

	meta, err := s.FilesService.Upload(r.Context(), name, data)
	if err != nil {
		s.writeError(w, r, "upload", err)
		return
	}
	s.metrics.storedBytes.Add(float64(meta.Size))

	s.Log.WithFields(log.Fields{
		"id":   meta.ID,
		"name": meta.Name,
		"size": humanize.IBytes(uint64(meta.Size)),
	}).Info("file stored")

	if err = writeJSON(w, http.StatusOK, meta); err != nil {
		s.Log.WithField("err", err).Warn("write upload response")
	}
}

// readFirstField достаёт имя и содержимое первого поля multipart-тела.
// Любая проблема разбора — ошибка клиента, а не повод уронить обработчик.
func readFirstField(r *http.Request) (string, []byte, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return "", nil, models.BadRequest("expected multipart body: %v", err)
	}

	part, err := mr.NextPart()
	if errors.Is(err, io.EOF) {
		return "", nil, models.BadRequest("no multipart fields")
	}
	if err != nil {
		return "", nil, classifyBodyError(err)
	}
	defer part.Close()

	name := part.FormName()
	if name == "" {
		return "", nil, models.BadRequest("multipart field has no name")
	}

	data, err := io.ReadAll(part)
	if err != nil {
		return "", nil, classifyBodyError(err)
	}

	return name, data, nil
}

func classifyBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %s", models.ErrTooLarge, humanize.IBytes(uint64(maxErr.Limit)))
	}

	return models.BadRequest("malformed multipart body: %v", err)
}
