package resthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/sir_venger/blob_lite/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:8000"

type uploadResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type field struct {
	name    string
	content []byte
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) (*httptest.Server, *Server, *test.Hook) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "files")
	cfg.AllowedOrigins = []string{testOrigin}
	for _, m := range mutate {
		m(cfg)
	}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h, srv, err := NewServer(context.Background(), cfg, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, srv, hook
}

func multipartBody(t *testing.T, fields ...field) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		fw, err := mw.CreateFormFile(f.name, f.name+".bin")
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func unnamedPartBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	pw, err := mw.CreatePart(textproto.MIMEHeader{"Content-Disposition": {"form-data"}})
	require.NoError(t, err)
	_, err = pw.Write([]byte("nameless"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, url string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func do(t *testing.T, method, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func upload(t *testing.T, baseURL string, fields ...field) uploadResponse {
	t.Helper()
	body, ct := multipartBody(t, fields...)
	resp := post(t, baseURL+"/files", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
