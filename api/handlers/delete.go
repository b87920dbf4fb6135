package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/services/search"
	"github.com/meghashyamc/booksearch/validation"
)

var errInvalidDocumentID = errors.New("FIELD1 must be a string or a number")

// DocumentID accepts both JSON strings and JSON numbers.
type DocumentID string

func (d *DocumentID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*d = DocumentID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return errInvalidDocumentID
	}
	*d = DocumentID(number.String())
	return nil
}

type DeleteRequest struct {
	ID DocumentID `json:"FIELD1" form:"FIELD1" validate:"required,valid_document_id"`
}

func SetupDelete(router gin.IRoutes, logger logger.Logger, searchDB searchdb.DB, validator *validation.Validator) {
	service := search.New(logger, searchDB)
	router.DELETE("/delete", handleDelete(service, logger, validator))

}

func handleDelete(service *search.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := DeleteRequest{}
		if err := c.ShouldBind(&request); err != nil {
			logger.Warn("could not extract expected params from delete request", "err", err.Error())
			writeError(c, http.StatusUnprocessableEntity, messageUnreadableBody)
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate delete request", "err", err.Error())
			writeError(c, http.StatusNotAcceptable, err.Error())
			return
		}

		id := string(request.ID)
		if err := service.Delete(c.Request.Context(), id); err != nil {
			logger.Error("error occurred during the delete", "id", id, "err", err.Error())
			writeError(c, http.StatusInternalServerError, messageDeleteFailed)
			return
		}

		writeResponse(c, nil, http.StatusAccepted)
	}
}
