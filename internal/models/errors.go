package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrBadRequest = errors.New("bad request")
	ErrTooLarge   = errors.New("upload too large")

	// ErrInvalidData зарезервирована под проверку содержимого блобов, сейчас нигде не возвращается.
	ErrInvalidData = errors.New("invalid file data")
)

// IOError оборачивает сбой файловой системы или транспорта при операции над блобом.
type IOError struct {
	Op  string
	ID  uuid.UUID
	Err error
}

func (e *IOError) Error() string {
	if e.ID == uuid.Nil {
		return fmt.Sprintf("%s: io error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: io error: %v", e.Op, e.ID, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// BadRequest помечает ошибку клиентского ввода, сохраняя исходную причину.
func BadRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
