package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/booksearch/api/handlers"
	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB, validator *validation.Validator) {
	router.GET("/health", health())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.SetupSearch(router, logger, searchDB)
	handlers.SetupDelete(router, logger, searchDB, validator)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

// newRouter uses its own request logging instead of gin's text logger.
func newRouter(logger logger.Logger) *gin.Engine {
	router := gin.New()
	router.UseRawPath = true
	router.Use(requestIDMiddleware())
	router.Use(_CORSMiddleware())
	router.Use(metricsMiddleware())
	router.Use(loggingMiddleware(logger))
	router.Use(gin.Recovery())

	return router
}
