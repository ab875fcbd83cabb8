package catalog

import (
	"context"
	"fmt"

	"adam/common"
	"adam/config"
	"adam/logging"

	"go.uber.org/zap"
)

// Source is a configured Loader with its optional cache
type Source struct {
	Loader
	// Name is "http", "s3" or "dir"
	Name string
	// Cache is nil when Redis is not configured
	Cache *CachedLoader
	close func() error
}

// Close releases the cache connection, if any
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewSource builds a Loader from settings. A data URL takes precedence over
// an S3 bucket, which takes precedence over the data directory. When Redis
// is configured but unreachable the source runs uncached with a warning.
func NewSource(ctx context.Context, s config.Settings, logger *zap.Logger) (*Source, error) {
	logger = logging.OrNop(logger)

	var (
		store Store
		name  string
	)
	switch {
	case s.DataURL != "":
		store, name = NewHTTPStore(s.DataURL, nil), "http"
	case s.S3Bucket != "":
		client, err := common.NewS3(ctx, common.S3Config{
			Region:       s.S3Region,
			Profile:      s.S3Profile,
			UsePathStyle: s.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init S3 client: %w", err)
		}
		store, name = NewS3Store(client, s.S3Bucket, s.S3Prefix), "s3"
	default:
		store, name = NewDirStore(s.DataDir), "dir"
	}

	src := &Source{
		Loader: NewManifestLoader(store,
			WithManifestName(s.ManifestName),
			WithSource(name),
			WithLoaderLogger(logger)),
		Name: name,
	}

	if s.RedisAddr == "" {
		return src, nil
	}
	client, err := NewRedisClient(ctx, RedisConfig{Addr: s.RedisAddr, Password: s.RedisPassword, DB: s.RedisDB})
	if err != nil {
		logger.Warn("Catalog cache disabled", zap.Error(err))
		return src, nil
	}
	src.Cache = NewCachedLoader(src.Loader, client, s.CacheTTL, logger)
	src.Loader = src.Cache
	src.close = client.Close
	return src, nil
}
