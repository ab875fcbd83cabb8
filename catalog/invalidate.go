package catalog

import (
	"context"
	"time"

	"adam/logging"
	"adam/shared/kafka"

	"go.uber.org/zap"
)

// CatalogUpdated is published when a language's record files change. An
// empty Language means the whole catalog changed.
type CatalogUpdated struct {
	Language  string    `json:"language,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Invalidator drops cached catalog entries
type Invalidator interface {
	Invalidate(ctx context.Context, language string) error
	InvalidateAll(ctx context.Context) error
}

// NewInvalidationHandler evicts cached languages on CatalogUpdated events
func NewInvalidationHandler(cache Invalidator, logger *zap.Logger) *kafka.TypedMessageHandler[CatalogUpdated] {
	logger = logging.OrNop(logger)
	return &kafka.TypedMessageHandler[CatalogUpdated]{
		AlwaysMark: true,
		Process: func(ctx context.Context, msg *CatalogUpdated) error {
			logger.Info("Catalog update received", zap.String("language", msg.Language), zap.Time("updated_at", msg.UpdatedAt))
			if msg.Language == "" {
				return cache.InvalidateAll(ctx)
			}
			return cache.Invalidate(ctx, msg.Language)
		},
	}
}
