package service

import (
	"context"
	"errors"
	"time"
)

// fakeStorage records calls instead of talking to S3.
type fakeStorage struct {
	deleted   []string
	failPut   bool
	deleteErr error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	if f.failPut {
		return "", errors.New("AccessDenied: bucket policy")
	}
	return "https://bucket.test/" + key + "?put&ct=" + contentType, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?get", nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}
