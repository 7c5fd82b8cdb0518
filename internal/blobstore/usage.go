package blobstore

import (
	"context"
	"os"

	"github.com/sir_venger/blob_lite/internal/models"
)

// Usage — агрегированная статистика по каталогу данных.
type Usage struct {
	Blobs      int   `json:"blobs"`
	TotalBytes int64 `json:"total_bytes"`
}

// Usage проходит по корню и суммирует размеры блобов. Временные файлы не учитываются.
func (l *Local) Usage(ctx context.Context) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return Usage{}, &models.IOError{Op: "usage", Err: err}
	}

	var u Usage
	for _, e := range entries {
		if e.IsDir() || isTemp(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// файл могли удалить между ReadDir и Info
			continue
		}
		u.Blobs++
		u.TotalBytes += info.Size()
	}

	return u, nil
}
