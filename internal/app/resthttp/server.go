package resthttp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sir_venger/blob_lite/internal/blobstore"
	"github.com/sir_venger/blob_lite/internal/config"
	"github.com/sir_venger/blob_lite/internal/usecase/filesvc"
	"github.com/sir_venger/blob_lite/pkg/blobproto"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	FilesService filesvc.Service
	Store        *blobstore.Local
	Cfg          *config.Config
	Log          log.FieldLogger

	metrics *metrics
}

// NewServer конструктор: готовит каталог данных, сервис файлов и роутер.
func NewServer(ctx context.Context, cfg *config.Config, logger log.FieldLogger) (http.Handler, *Server, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	store, err := blobstore.New(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	if err = store.Init(ctx); err != nil {
		return nil, nil, err
	}

	srv := &Server{
		FilesService: filesvc.New(filesvc.Deps{Storage: store}),
		Store:        store,
		Cfg:          cfg,
		Log:          logger,
		metrics:      newMetrics(),
	}

	return srv.routes(), srv, nil
}

// routes регистрирует обработчики файлов, здоровья и метрик.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(middleware.RealIP)
	rtr.Use(s.instrument)
	rtr.Use(middleware.Recoverer)
	// DELETE в список намеренно не входит: кросс-доменное удаление браузер не пропустит.
	rtr.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	rtr.Post(blobproto.FilesPath, s.postFiles)
	rtr.Get(blobproto.FilesPath+"/{id}", s.getFile)
	rtr.Delete(blobproto.FilesPath+"/{id}", s.deleteFile)

	rtr.Get(blobproto.HealthPath, s.health)
	rtr.Method(http.MethodGet, blobproto.MetricsPath, promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return rtr
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", blobproto.ContentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}
