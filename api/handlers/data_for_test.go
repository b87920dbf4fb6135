package handlers

import (
	"net/http"

	"github.com/meghashyamc/booksearch/db/searchdb"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}
var formTestRequestHeaders = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

func stringPtr(s string) *string { return &s }

var testDocuments = []searchdb.IndexableDocument{
	{ID: "0", Data: map[string]any{
		"FIELD1":         "0",
		"title":          "The Great Gatsby",
		"author":         "F. Scott Fitzgerald",
		"description":    "A classic novel about the Jazz Age",
		"published_date": "1925-04-10",
		"publisher":      "Scribner",
		"page_count":     180,
	}},
	{ID: "1", Data: map[string]any{
		"FIELD1": "1",
		"title":  "Tender Is the Night",
		"author": "F. Scott Fitzgerald",
	}},
	{ID: "2", Data: map[string]any{
		"FIELD1":         "2",
		"title":          "Moby Dick",
		"author":         "Herman Melville",
		"description":    "The voyage of the whaling ship Pequod",
		"published_date": "1851-10-18",
	}},
	{ID: "3", Data: map[string]any{
		"FIELD1": "3",
		"title":  "Untitled Manuscript",
	}},
}

var gatsbyResult = map[string]any{
	"FIELD1":         "0",
	"title":          "The Great Gatsby",
	"author":         "F. Scott Fitzgerald",
	"description":    "A classic novel about the Jazz Age",
	"published_date": "1925-04-10",
}

var tenderResult = map[string]any{
	"FIELD1": "1",
	"title":  "Tender Is the Night",
	"author": "F. Scott Fitzgerald",
}

var mobyResult = map[string]any{
	"FIELD1":         "2",
	"title":          "Moby Dick",
	"author":         "Herman Melville",
	"description":    "The voyage of the whaling ship Pequod",
	"published_date": "1851-10-18",
}

var searchHandlerTestCases = []testCase{
	{
		name:           "NoRequestBody",
		requestHeaders: defaultTestRequestHeaders,
		expectedStatus: http.StatusUnprocessableEntity,
		expectedBody:   stringPtr(messageUnreadableBody),
	},
	{
		name:           "MalformedRequestBody",
		requestHeaders: defaultTestRequestHeaders,
		rawRequestBody: `{"field":`,
		expectedStatus: http.StatusUnprocessableEntity,
		expectedBody:   stringPtr(messageUnreadableBody),
	},
	{
		name:             "SearchTitle",
		requestHeaders:   defaultTestRequestHeaders,
		requestBody:      map[string]any{"field": "title", "query": "The Great Gatsby"},
		expectedStatus:   http.StatusOK,
		expectedResponse: []map[string]any{gatsbyResult},
	},
	{
		name:             "SearchIsCaseInsensitive",
		requestHeaders:   defaultTestRequestHeaders,
		requestBody:      map[string]any{"field": "title", "query": "MOBY"},
		expectedStatus:   http.StatusOK,
		expectedResponse: []map[string]any{mobyResult},
	},
	{
		name:             "SearchAuthorMatchesSeveral",
		requestHeaders:   defaultTestRequestHeaders,
		requestBody:      map[string]any{"field": "author", "query": "fitzgerald"},
		expectedStatus:   http.StatusOK,
		expectedResponse: []map[string]any{gatsbyResult, tenderResult},
	},
	{
		name:             "SearchOmitsMissingFields",
		requestHeaders:   defaultTestRequestHeaders,
		requestBody:      map[string]any{"field": "title", "query": "manuscript"},
		expectedStatus:   http.StatusOK,
		expectedResponse: []map[string]any{{"FIELD1": "3", "title": "Untitled Manuscript"}},
	},
	{
		name:           "SearchNoResults",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"field": "title", "query": "nonexistent"},
		expectedStatus: http.StatusOK,
		expectedBody:   stringPtr("[]"),
	},
	{
		name:           "SearchIsRestrictedToField",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"field": "author", "query": "gatsby"},
		expectedStatus: http.StatusOK,
		expectedBody:   stringPtr("[]"),
	},
	{
		name:           "SearchUnknownField",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"field": "isbn", "query": "gatsby"},
		expectedStatus: http.StatusOK,
		expectedBody:   stringPtr("[]"),
	},
	{
		name:             "SearchFormEncodedBody",
		requestHeaders:   formTestRequestHeaders,
		rawRequestBody:   "field=title&query=moby+dick",
		expectedStatus:   http.StatusOK,
		expectedResponse: []map[string]any{mobyResult},
	},
}

// Run in order against one index: later cases depend on earlier deletes.
var deleteHandlerTestCases = []testCase{
	{
		name:           "NoRequestBody",
		requestHeaders: defaultTestRequestHeaders,
		expectedStatus: http.StatusUnprocessableEntity,
	},
	{
		name:           "MalformedRequestBody",
		requestHeaders: defaultTestRequestHeaders,
		rawRequestBody: `{"FIELD1":`,
		expectedStatus: http.StatusUnprocessableEntity,
	},
	{
		name:           "InvalidIDType",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": true},
		expectedStatus: http.StatusUnprocessableEntity,
	},
	{
		name:           "MissingID",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{},
		expectedStatus: http.StatusNotAcceptable,
		expectedBody:   stringPtr("missing required field 'FIELD1'"),
	},
	{
		name:           "BlankID",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": "  "},
		expectedStatus: http.StatusNotAcceptable,
		expectedBody:   stringPtr("invalid document id"),
	},
	{
		name:           "Success",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": "2"},
		expectedStatus: http.StatusAccepted,
		expectedBody:   stringPtr(""),
	},
	{
		name:           "SuccessNumericID",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": 1},
		expectedStatus: http.StatusAccepted,
		expectedBody:   stringPtr(""),
	},
	{
		name:           "AlreadyDeleted",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": "2"},
		expectedStatus: http.StatusInternalServerError,
		expectedBody:   stringPtr(messageDeleteFailed),
	},
}

var failingEngineSearchTestCases = []testCase{
	{
		name:           "SearchEngineFailure",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"field": "title", "query": "gatsby"},
		expectedStatus: http.StatusInternalServerError,
		expectedBody:   stringPtr(messageSearchFailed),
	},
}

var failingEngineDeleteTestCases = []testCase{
	{
		name:           "DeleteEngineFailure",
		requestHeaders: defaultTestRequestHeaders,
		requestBody:    map[string]any{"FIELD1": "0"},
		expectedStatus: http.StatusInternalServerError,
		expectedBody:   stringPtr(messageDeleteFailed),
	},
}
