package blobclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sir_venger/blob_lite/pkg/blobproto"
)

// ErrNotFound возвращается, если сервер ответил 404.
var ErrNotFound = errors.New("file not found")

// StatusError — неожиданный ответ сервера.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// FileInfo — ответ сервера на загрузку.
type FileInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadRequest struct {
	// Field имя multipart-поля, по умолчанию blobproto.DefaultFormField.
	Field    string
	FileName string
	Reader   io.Reader
	// Size нужен только для индикатора; <= 0 — неизвестен.
	Size int64
}

type Client interface {
	// Upload Положить файл в хранилище
	Upload(ctx context.Context, req UploadRequest) (FileInfo, error)
	// Download Достать файл из хранилища
	Download(ctx context.Context, id string, w io.Writer) (int64, error)
	// Delete Удалить файл из хранилища
	Delete(ctx context.Context, id string) error
}

type Option func(*httpClient)

// WithHTTPClient подменяет транспорт.
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает индикатор выполнения в out.
func WithProgress(out io.Writer) Option {
	return func(h *httpClient) { h.progress = out }
}

type httpClient struct {
	base     string
	c        *http.Client
	progress io.Writer
}

// New создаёт HTTP-клиент хранилища по базовому адресу.
func New(baseURL string, opts ...Option) Client {
	h := &httpClient{
		base: strings.TrimRight(baseURL, "/"),
		c:    &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Upload отправляет файл multipart-телом, не буферизуя его целиком в памяти клиента.
func (h *httpClient) Upload(ctx context.Context, req UploadRequest) (FileInfo, error) {
	if req.Reader == nil {
		return FileInfo{}, fmt.Errorf("reader is required")
	}
	field := req.Field
	if field == "" {
		field = blobproto.DefaultFormField
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = field
	}

	bar := h.newBar(fmt.Sprintf("Uploading %s", fileName), req.Size)
	body := req.Reader
	if bar != nil {
		body = io.TeeReader(req.Reader, progressWriter{bar: bar})
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile(field, fileName)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err = io.Copy(fw, body); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+blobproto.FilesPath, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.Fail(err)
		return FileInfo{}, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	bar.render(true, "")

	resp, err := h.c.Do(httpReq)
	if err != nil {
		_ = pr.CloseWithError(err)
		bar.Fail(err)
		return FileInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = statusError(resp)
		bar.Fail(err)
		return FileInfo{}, err
	}

	var info FileInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		bar.Fail(err)
		return FileInfo{}, err
	}

	bar.Finish()
	return info, nil
}

// Download копирует содержимое файла в w и возвращает число байт.
func (h *httpClient) Download(ctx context.Context, id string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(blobproto.FilePathFormat, h.base, id), nil)
	if err != nil {
		return 0, err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, statusError(resp)
	}

	bar := h.newBar(fmt.Sprintf("Downloading %s", id), resp.ContentLength)
	bar.render(true, "")
	n, err := io.Copy(w, newProgressReadCloser(resp.Body, bar))
	if err != nil {
		bar.Fail(err)
		return n, err
	}
	bar.Finish()

	return n, nil
}

// Delete удаляет файл.
func (h *httpClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf(blobproto.FilePathFormat, h.base, id), nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

func (h *httpClient) newBar(prefix string, total int64) *progressBar {
	if h.progress == nil {
		return nil
	}
	return newProgressBar(h.progress, prefix, total)
}

func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
