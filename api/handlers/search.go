package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/services/search"
)

// SearchRequest is not validated: an unknown field is left to the engine.
type SearchRequest struct {
	Field string `json:"field" form:"field"`
	Query string `json:"query" form:"query"`
}

func SetupSearch(router gin.IRoutes, logger logger.Logger, searchDB searchdb.DB) {
	service := search.New(logger, searchDB)
	router.POST("/search", handleSearch(service, logger))

}

func handleSearch(service *search.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			writeError(c, http.StatusUnprocessableEntity, messageUnreadableBody)
			return
		}

		results, err := service.Search(c.Request.Context(), request.Field, request.Query)
		if err != nil {
			logger.Error("error occurred during the search", "field", request.Field, "err", err.Error())
			writeError(c, http.StatusInternalServerError, messageSearchFailed)
			return
		}

		writeResponse(c, results, http.StatusOK)
	}
}
