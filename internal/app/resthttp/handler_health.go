package resthttp

import (
	"net/http"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Blobs      int   `json:"blobs"`
	TotalBytes int64 `json:"total_bytes"`
}

// health возвращает агрегированную статистику по каталогу данных.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	usage, err := s.Store.Usage(r.Context())
	if err != nil {
		s.writeError(w, r, "health", err)
		return
	}
	s.metrics.blobs.Set(float64(usage.Blobs))

	if err = writeJSON(w, http.StatusOK, healthStats{
		OK:         true,
		Blobs:      usage.Blobs,
		TotalBytes: usage.TotalBytes,
	}); err != nil {
		s.Log.WithField("err", err).Warn("write health response")
	}
}
