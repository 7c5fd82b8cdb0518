package filesvc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sir_venger/blob_lite/internal/models"
)

type (
	// BlobStorage хранилище содержимого файлов по идентификатору.
	BlobStorage interface {
		Store(ctx context.Context, id uuid.UUID, data []byte) error
		Retrieve(ctx context.Context, id uuid.UUID) ([]byte, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// Service объединяет операции по загрузке, выдаче и удалению файлов.
	Service interface {
		Upload(ctx context.Context, name string, data []byte) (models.FileMetadata, error)
		Get(ctx context.Context, id uuid.UUID) ([]byte, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}
)

type Deps struct {
	Storage BlobStorage
	// NewID выдаёт идентификатор новой загрузки; по умолчанию uuid.New (v4, crypto/rand).
	NewID func() uuid.UUID
	Now   func() time.Time
}

type Files struct {
	Deps
}

// New конструирует сервис файлов с заданными зависимостями.
func New(deps Deps) *Files {
	if deps.NewID == nil {
		deps.NewID = uuid.New
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Files{Deps: deps}
}

var _ Service = (*Files)(nil)

// Get возвращает содержимое файла целиком.
func (s *Files) Get(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return s.Storage.Retrieve(ctx, id)
}

// Delete удаляет файл; повторное удаление вернёт models.ErrNotFound.
func (s *Files) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Storage.Delete(ctx, id)
}
