package searchdb

import (
	"context"
	"fmt"

	"github.com/meghashyamc/booksearch/config"
	"github.com/meghashyamc/booksearch/logger"
)

type DB interface {
	Search(ctx context.Context, field string, query string, fields []string) ([]Document, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

func New(logger logger.Logger, cfg config.Engine) (DB, error) {
	switch cfg.Kind {
	case config.EngineKindOpenSearch:
		db, err := NewOpenSearchDB(logger, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil

	case config.EngineKindBleve:
		db, err := NewBleveDB(logger, cfg.Index, cfg.BlevePath)
		if err != nil {
			return nil, err
		}
		if len(cfg.SeedPath) > 0 {
			if err := db.Seed(cfg.SeedPath); err != nil {
				db.Close()
				return nil, err
			}
		}
		return db, nil
	}

	logger.Error("unknown search engine kind", "kind", cfg.Kind)
	return nil, fmt.Errorf("unknown search engine kind %q", cfg.Kind)
}
