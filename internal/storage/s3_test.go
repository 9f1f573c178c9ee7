package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"fittrack/fitness-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) FileStorage {
	t.Helper()
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "avatars",
	}, nil)
	require.NoError(t, err)
	return fs
}

func TestS3Storage_PresignedUpload(t *testing.T) {
	fs := testStorage(t)

	raw, err := fs.GeneratePresignedUploadURL(context.Background(), "avatars/u1/a.png", "image/png", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/avatars/avatars/u1/a.png", u.Path, "path-style: bucket then key")
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "host")
}

func TestS3Storage_PresignedDownloadDefaultsExpiry(t *testing.T) {
	fs := testStorage(t)

	raw, err := fs.GeneratePresignedDownloadURL(context.Background(), "avatars/u1/a.png", 0)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://s3.example.com", endpointURL("s3.example.com", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000", true))
}

func TestImageExtension(t *testing.T) {
	ext, ok := ImageExtension("image/png")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	_, ok = ImageExtension("application/pdf")
	assert.False(t, ok)
}
