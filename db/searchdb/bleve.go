package searchdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/meghashyamc/booksearch/bulk"
	"github.com/meghashyamc/booksearch/logger"
)

const indexingBatchSize = 100

// BleveDB is an embedded engine for local development and tests. An empty
// index path keeps the index in memory.
type BleveDB struct {
	name      string
	indexPath string
	logger    logger.Logger
	index     bleve.Index
}

func NewBleveDB(logger logger.Logger, name string, indexPath string) (*BleveDB, error) {
	mapping := createIndexMapping()

	if len(indexPath) == 0 {
		index, err := bleve.NewMemOnly(mapping)
		if err != nil {
			logger.Error("could not create in-memory index", "err", err.Error())
			return nil, err
		}
		return &BleveDB{name: name, logger: logger, index: index}, nil
	}

	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		logger.Error("failed to create index directory", "err", err.Error(), "path", indexPath)
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	index, err := bleve.New(indexPath, mapping)
	if err != nil {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Error("could not open index", "err", err.Error(), "path", indexPath)
			return nil, err
		}
	}
	return &BleveDB{name: name, indexPath: indexPath, logger: logger, index: index}, nil
}

func createIndexMapping() mapping.IndexMapping {

	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	for _, field := range []string{FieldTitle, FieldAuthor, FieldDescription} {
		textFieldMapping := bleve.NewTextFieldMapping()
		textFieldMapping.Analyzer = standard.Name
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}

	// Kept as a keyword so dynamic mapping does not turn it into a datetime
	publishedFieldMapping := bleve.NewTextFieldMapping()
	publishedFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(FieldPublishedDate, publishedFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

func (b *BleveDB) BuildIndex(documents []IndexableDocument) error {

	batch := b.index.NewBatch()

	for i, doc := range documents {

		if err := batch.Index(doc.ID, doc.Data); err != nil {
			b.logger.Error("could not index document", "id", doc.ID, "err", err.Error())
			return err
		}

		if (i+1)%indexingBatchSize == 0 {
			if err := b.index.Batch(batch); err != nil {
				return err
			}
			batch = b.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := b.index.Batch(batch); err != nil {
			b.logger.Error("could not index document", "err", err.Error())
			return err
		}
	}

	return nil
}

// Seed indexes the records of a bulk file that target this index.
func (b *BleveDB) Seed(path string) error {
	file, err := os.Open(path)
	if err != nil {
		b.logger.Error("could not open seed file", "path", path, "err", err.Error())
		return fmt.Errorf("could not open seed file: %w", err)
	}
	defer file.Close()

	records, err := bulk.Decode(file)
	if err != nil {
		b.logger.Error("could not decode seed file", "path", path, "err", err.Error())
		return fmt.Errorf("could not decode seed file %s: %w", path, err)
	}

	documents := make([]IndexableDocument, 0, len(records))
	for _, record := range records {
		if record.Index != b.name {
			b.logger.Warn("skipping seed record for another index", "index", record.Index, "id", record.ID)
			continue
		}
		var data map[string]any
		if err := json.Unmarshal(record.Document, &data); err != nil {
			b.logger.Warn("skipping seed record that is not an object", "id", record.ID, "err", err.Error())
			continue
		}
		documents = append(documents, IndexableDocument{ID: record.ID, Data: data})
	}

	if err := b.BuildIndex(documents); err != nil {
		return err
	}

	b.logger.Info("seeded index", "index", b.name, "path", path, "documents", len(documents))
	return nil
}

func (b *BleveDB) Search(ctx context.Context, field string, query string, fields []string) ([]Document, error) {
	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetField(field)

	searchRequest := bleve.NewSearchRequest(matchQuery)
	searchRequest.Fields = fields

	searchResult, err := b.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		b.logger.Error("search failed", "err", err.Error())
		return nil, fmt.Errorf("search failed: %w", err)
	}

	documents := make([]Document, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		document := make(Document, len(fields))
		for _, name := range fields {
			if value, ok := hit.Fields[name]; ok {
				document[name] = value
			}
		}
		documents = append(documents, document)
	}

	return documents, nil
}

func (b *BleveDB) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// bleve deletes missing ids silently; report them the way a remote engine would
	existing, err := b.index.Document(id)
	if err != nil {
		b.logger.Error("could not look up document", "id", id, "err", err.Error())
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	if err := b.index.Delete(id); err != nil {
		b.logger.Error("could not delete document", "id", id, "err", err.Error())
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

func (b *BleveDB) GetDocCount() (uint64, error) {
	return b.index.DocCount()
}

func (b *BleveDB) Close() error {

	if b.index != nil {
		if err := b.index.Close(); err != nil {
			b.logger.Error("could not close search index", "err", err.Error())
			return err
		}
	}
	return nil
}
