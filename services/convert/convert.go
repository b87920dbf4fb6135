package convert

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/meghashyamc/booksearch/bulk"
	"github.com/meghashyamc/booksearch/logger"
)

const outputFileMode = 0644

var errNotArray = errors.New("top-level value is not an array")

type Service struct {
	logger logger.Logger
	index  string
}

type Result struct {
	Documents int
	Bytes     int
}

func New(logger logger.Logger, index string) *Service {
	return &Service{
		logger: logger,
		index:  index,
	}
}

// Run converts the JSON array in source into bulk-ingest lines and writes them
// to destination. Nothing is written unless the source parses.
func (s *Service) Run(ctx context.Context, source string, destination string) (*Result, error) {
	docs, err := s.load(ctx, source)
	if err != nil {
		return nil, err
	}

	out, err := bulk.Encode(docs, s.index)
	if err != nil {
		s.logger.Error("could not encode bulk data", "path", source, "err", err.Error())
		return nil, &ParseError{Path: source, Err: err}
	}

	if err := s.store(ctx, destination, out); err != nil {
		return nil, err
	}

	s.logger.Info("bulk data written", "path", destination, "documents", len(docs), "index", s.index)

	return &Result{Documents: len(docs), Bytes: len(out)}, nil
}

func (s *Service) load(ctx context.Context, source string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		s.logger.Error("error reading the file", "path", source, "err", err.Error())
		return nil, &ReadError{Path: source, Err: err}
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		s.logger.Error("error parsing JSON data", "path", source, "err", err.Error())
		return nil, &ParseError{Path: source, Err: err}
	}
	if docs == nil {
		s.logger.Error("error parsing JSON data", "path", source, "err", errNotArray.Error())
		return nil, &ParseError{Path: source, Err: errNotArray}
	}

	return docs, nil
}

func (s *Service) store(ctx context.Context, destination string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(destination, data, outputFileMode); err != nil {
		s.logger.Error("error writing to file", "path", destination, "err", err.Error())
		return &WriteError{Path: destination, Err: err}
	}

	return nil
}
