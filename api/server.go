package api

import (
	"adam/catalog"
	"adam/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter constructs a Gin engine serving the catalog from loader.
// The server hands out raw records only; filtering and pagination happen
// in the client.
func NewRouter(loader catalog.Loader, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(logger))

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterCatalogRoutes(r, loader, logger)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
