// Package blobproto описывает HTTP-протокол хранилища блобов: пути и типы содержимого.
package blobproto

// Параметры REST-протокола.
const (
	FilesPath        = "/files"
	FilePathFormat   = "%s/files/%s"
	HealthPath       = "/health"
	MetricsPath      = "/metrics"
	DefaultFormField = "file"

	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeJSON        = "application/json"
)
