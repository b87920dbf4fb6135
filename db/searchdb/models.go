package searchdb

// Document is a matched engine document restricted to the requested fields.
type Document map[string]any

type IndexableDocument struct {
	ID   string
	Data map[string]any
}

const (
	FieldID            = "FIELD1"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldDescription   = "description"
	FieldPublishedDate = "published_date"
)
