package filesvc

import (
	"context"

	"github.com/sir_venger/blob_lite/internal/models"
)

// Upload сохраняет data под свежим случайным идентификатором и возвращает описание загрузки.
// Описание нигде не сохраняется: повторно получить имя или время создания нельзя.
func (s *Files) Upload(ctx context.Context, name string, data []byte) (models.FileMetadata, error) {
	if name == "" {
		return models.FileMetadata{}, models.BadRequest("field name is required")
	}

	id := s.NewID()
	if err := s.Storage.Store(ctx, id, data); err != nil {
		return models.FileMetadata{}, err
	}

	return models.FileMetadata{
		ID:        id,
		Name:      name,
		Size:      int64(len(data)),
		CreatedAt: s.Now().UTC(),
	}, nil
}
