package blobclient

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sir_venger/blob_lite/internal/app/resthttp"
	"github.com/sir_venger/blob_lite/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "files")
	logger, _ := test.NewNullLogger()
	h, _, err := resthttp.NewServer(context.Background(), cfg, logger)
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestUploadDownloadDelete(t *testing.T) {
	var progress bytes.Buffer
	cli := New(newBackend(t)+"/", WithProgress(&progress))
	ctx := context.Background()

	payload := bytes.Repeat([]byte("0123456789abcdef"), 4096)
	info, err := cli.Upload(ctx, UploadRequest{FileName: "data.bin", Reader: bytes.NewReader(payload), Size: int64(len(payload))})
	require.NoError(t, err)
	assert.Equal(t, "file", info.Name)
	assert.Equal(t, int64(len(payload)), info.Size)

	var got bytes.Buffer
	n, err := cli.Download(ctx, info.ID, &got)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.True(t, bytes.Equal(payload, got.Bytes()))

	require.NoError(t, cli.Delete(ctx, info.ID))
	_, err = cli.Download(ctx, info.ID, &got)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, cli.Delete(ctx, info.ID), ErrNotFound)

	assert.Contains(t, progress.String(), "Uploading data.bin")
	assert.Contains(t, progress.String(), "100%")
}

func TestUploadCustomField(t *testing.T) {
	cli := New(newBackend(t))
	info, err := cli.Upload(context.Background(), UploadRequest{Field: "avatar", Reader: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "avatar", info.Name)
	assert.Equal(t, int64(3), info.Size)
}

func TestStatusError(t *testing.T) {
	cli := New(newBackend(t))
	_, err := cli.Download(context.Background(), "not-a-uuid", &bytes.Buffer{})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, se.Body, "invalid file id")
}

func TestUploadRequiresReader(t *testing.T) {
	cli := New("http://127.0.0.1:0")
	_, err := cli.Upload(context.Background(), UploadRequest{})
	require.Error(t, err)
}

func TestDownloadUnknown(t *testing.T) {
	cli := New(newBackend(t))
	_, err := cli.Download(context.Background(), uuid.NewString(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressBarLine(t *testing.T) {
	var out bytes.Buffer
	bar := newProgressBar(&out, "Uploading x", 2048)
	bar.AddBytes(1024)
	bar.render(true, "")
	assert.Contains(t, out.String(), " 50% 1.0 KiB/2.0 KiB")

	bar.Finish()
	bar.Fail(nil)
	assert.True(t, strings.HasSuffix(out.String(), " ✓\n"))

	var nilBar *progressBar
	nilBar.AddBytes(10)
	nilBar.Finish()
}
