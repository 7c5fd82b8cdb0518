package blobstore

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartJanitor стартует периодическую очистку временных файлов, брошенных оборванными записями.
// Возвращает функцию остановки; повторный вызов безопасен.
func (l *Local) StartJanitor(ttl time.Duration, every time.Duration, logger log.FieldLogger) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				removed, err := l.SweepOnce(ttl)
				if err != nil {
					logger.WithField("err", err).Warn("temp sweep failed")
					continue
				}
				if removed > 0 {
					logger.WithField("removed", removed).Info("stale temp files removed")
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// SweepOnce удаляет временные файлы старше ttl и возвращает их количество.
// Файлы блобов не трогает.
func (l *Local) SweepOnce(ttl time.Duration) (int, error) {
	now := time.Now()
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !isTemp(e.Name()) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < ttl {
			continue
		}

		if err := os.Remove(filepath.Join(l.root, e.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}
