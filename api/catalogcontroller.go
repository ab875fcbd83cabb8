package api

import (
	"errors"
	"net/http"

	"adam/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type catalogController struct {
	loader catalog.Loader
	logger *zap.Logger
}

// RegisterCatalogRoutes registers language and record endpoints.
func RegisterCatalogRoutes(r *gin.Engine, loader catalog.Loader, logger *zap.Logger) {
	cc := &catalogController{loader: loader, logger: logger}

	g := r.Group("/api/languages")
	g.GET("", cc.handleListLanguages)
	g.GET("/:language/articles", cc.handleLoadArticles)
}

// handleListLanguages returns the languages in the catalog manifest
func (cc *catalogController) handleListLanguages(c *gin.Context) {
	langs, err := cc.loader.ListLanguages(c.Request.Context())
	if err != nil {
		cc.logger.Error("Failed to list languages", zap.Error(err))
		c.JSON(http.StatusBadGateway, catalog.ErrorResponse{Error: "failed to list languages: " + err.Error()})
		return
	}
	if langs == nil {
		langs = []string{}
	}
	c.JSON(http.StatusOK, catalog.LanguagesResponse{Languages: langs})
}

// handleLoadArticles returns every raw record for a language
func (cc *catalogController) handleLoadArticles(c *gin.Context) {
	language := c.Param("language")

	records, err := cc.loader.LoadArticles(c.Request.Context(), language)
	if errors.Is(err, catalog.ErrLanguageNotFound) {
		c.JSON(http.StatusNotFound, catalog.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		cc.logger.Error("Failed to load articles", zap.String("language", language), zap.Error(err))
		c.JSON(http.StatusBadGateway, catalog.ErrorResponse{Error: "failed to load articles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, catalog.ArticlesResponse{
		Language: language,
		Count:    len(records),
		Records:  records,
	})
}
