package search

import (
	"context"

	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
)

// ResultFields are the only document fields a search asks the engine for.
var ResultFields = []string{
	searchdb.FieldID,
	searchdb.FieldTitle,
	searchdb.FieldAuthor,
	searchdb.FieldDescription,
	searchdb.FieldPublishedDate,
}

// Result fields missing from the matched document are left out of the JSON.
type Result struct {
	ID            any `json:"FIELD1,omitempty"`
	Title         any `json:"title,omitempty"`
	Author        any `json:"author,omitempty"`
	Description   any `json:"description,omitempty"`
	PublishedDate any `json:"published_date,omitempty"`
}

type Service struct {
	logger logger.Logger
	db     searchdb.DB
}

func New(logger logger.Logger, db searchdb.DB) *Service {
	return &Service{
		logger: logger,
		db:     db,
	}
}

// Search runs a match query for query on field and returns the hits in engine order.
func (s *Service) Search(ctx context.Context, field string, query string) ([]Result, error) {
	documents, err := s.db.Search(ctx, field, query, ResultFields)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(documents))
	for _, document := range documents {
		results = append(results, toResult(document))
	}

	s.logger.Debug("search completed", "field", field, "hits", len(results))

	return results, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.db.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

func toResult(document searchdb.Document) Result {
	return Result{
		ID:            document[searchdb.FieldID],
		Title:         document[searchdb.FieldTitle],
		Author:        document[searchdb.FieldAuthor],
		Description:   document[searchdb.FieldDescription],
		PublishedDate: document[searchdb.FieldPublishedDate],
	}
}
