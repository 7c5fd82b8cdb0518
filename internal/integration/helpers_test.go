package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sir_venger/blob_lite/internal/app/resthttp"
	"github.com/sir_venger/blob_lite/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type uploadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

func startServer(t *testing.T) (*httptest.Server, *resthttp.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "files")

	logger, _ := test.NewNullLogger()
	h, srv, err := resthttp.NewServer(context.Background(), cfg, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, srv
}

func uploadFile(url, field string, data []byte) (uploadResponse, int, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormField(field)
		if err != nil {
			return uploadResponse{}, 0, err
		}
		if _, err = fw.Write(data); err != nil {
			return uploadResponse{}, 0, err
		}
	}
	if err := mw.Close(); err != nil {
		return uploadResponse{}, 0, err
	}

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		return uploadResponse{}, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uploadResponse{}, resp.StatusCode, nil
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return uploadResponse{}, resp.StatusCode, err
	}
	return out, resp.StatusCode, nil
}

func downloadFile(url string) ([]byte, int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	return b, resp.StatusCode, err
}

func deleteFile(url string) (int, error) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if _, err = io.Copy(io.Discard, resp.Body); err != nil {
		return resp.StatusCode, fmt.Errorf("drain body: %w", err)
	}
	return resp.StatusCode, nil
}
