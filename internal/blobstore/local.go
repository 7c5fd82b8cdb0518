package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sir_venger/blob_lite/internal/models"
)

const (
	tempPrefix  = ".tmp-"
	tempPattern = tempPrefix + "*"
)

// Local хранит блобы в одном каталоге. После New не меняется, поэтому
// безопасно разделяется между горутинами без блокировок.
type Local struct {
	root string
}

// New создаёт хранилище с корнем root. Каталог не создаётся — для этого есть Init.
func New(root string) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &Local{root: abs}, nil
}

// Root возвращает абсолютный путь до корня хранилища.
func (l *Local) Root() string {
	return l.root
}

// Init гарантирует наличие корневого каталога. Повторный вызов безопасен.
func (l *Local) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return &models.IOError{Op: "init", Err: err}
	}

	return nil
}

// Store записывает data под идентификатором id, полностью заменяя прежнее содержимое.
func (l *Local) Store(ctx context.Context, id uuid.UUID, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.root, tempPattern)
	if err != nil {
		return &models.IOError{Op: "store", ID: id, Err: err}
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err = tmp.Write(data); err != nil {
		cleanup()
		return &models.IOError{Op: "store", ID: id, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		cleanup()
		return &models.IOError{Op: "store", ID: id, Err: err}
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &models.IOError{Op: "store", ID: id, Err: err}
	}

	if err = os.Rename(tmpPath, l.pathFor(id)); err != nil {
		_ = os.Remove(tmpPath)
		return &models.IOError{Op: "store", ID: id, Err: err}
	}

	return nil
}

// Retrieve возвращает содержимое блоба целиком либо models.ErrNotFound.
func (l *Local) Retrieve(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.pathFor(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, &models.IOError{Op: "retrieve", ID: id, Err: err}
	}

	return data, nil
}

// Delete удаляет блоб. Для неизвестного id возвращает models.ErrNotFound.
func (l *Local) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(l.pathFor(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return &models.IOError{Op: "delete", ID: id, Err: err}
	}

	return nil
}

// pathFor: id типизирован, String() даёт только hex и дефисы, выйти за root нельзя.
func (l *Local) pathFor(id uuid.UUID) string {
	return filepath.Join(l.root, id.String())
}

func isTemp(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}
