package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"adam/common"
)

// ObjectGetter is the part of common.S3 the catalog needs
type ObjectGetter interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3Store reads catalog objects from a bucket under a key prefix
type S3Store struct {
	s3     ObjectGetter
	bucket string
	prefix string
}

// NewS3Store creates a store. prefix is joined to object names as is, so
// it should be empty or end with "/".
func NewS3Store(s3 ObjectGetter, bucket, prefix string) *S3Store {
	return &S3Store{s3: s3, bucket: bucket, prefix: prefix}
}

// Open implements Store
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.prefix + strings.TrimPrefix(name, "/")
	body, err := s.s3.Get(ctx, s.bucket, key)
	if common.IsNotFound(err) {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	return body, nil
}
