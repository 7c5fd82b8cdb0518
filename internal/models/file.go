package models

import (
	"time"

	"github.com/google/uuid"
)

// FileMetadata описывает только что загруженный файл. Нигде не сохраняется:
// собирается один раз для ответа на загрузку.
type FileMetadata struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
