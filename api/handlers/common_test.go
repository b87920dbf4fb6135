// Common test helpers
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/booksearch/config"
	"github.com/meghashyamc/booksearch/db/searchdb"
	"github.com/meghashyamc/booksearch/logger"
	"github.com/meghashyamc/booksearch/validation"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name             string
	requestHeaders   map[string]string
	requestBody      map[string]any
	rawRequestBody   string
	expectedStatus   int
	expectedBody     *string
	expectedResponse []map[string]any
}

var errEngineUnavailable = errors.New("dial tcp 127.0.0.1:9200: connect: connection refused")

// failingDB stands in for an engine that rejects every call.
type failingDB struct{}

func (failingDB) Search(ctx context.Context, field string, query string, fields []string) ([]searchdb.Document, error) {
	return nil, errEngineUnavailable
}

func (failingDB) Delete(ctx context.Context, id string) error {
	return errEngineUnavailable
}

func (failingDB) Close() error { return nil }

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupTestServer(t *testing.T, assert *require.Assertions) (*gin.Engine, *searchdb.BleveDB) {

	t.Setenv("ENV", "test")

	cfg, err := config.Load("")
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()

	searchDB, err := searchdb.New(testLogger, cfg.Engine())
	assert.NoError(err, "could not create search database")
	bleveDB, ok := searchDB.(*searchdb.BleveDB)
	assert.True(ok, "test config should use the embedded engine")
	t.Cleanup(func() {
		assert.NoError(bleveDB.Close(), "could not close search database")
	})

	assert.NoError(bleveDB.BuildIndex(testDocuments), "could not index test documents")

	return setupTestRouter(assert, testLogger, searchDB), bleveDB
}

func setupFailingTestServer(assert *require.Assertions) *gin.Engine {
	return setupTestRouter(assert, newTestLogger(), failingDB{})
}

func setupTestRouter(assert *require.Assertions, testLogger logger.Logger, searchDB searchdb.DB) *gin.Engine {
	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, searchDB)
	SetupDelete(router, testLogger, searchDB, validator)

	return router
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, rawBody string) *httptest.ResponseRecorder {

	w := httptest.NewRecorder()

	var body io.Reader
	if requestBodyMap != nil {
		jsonBody, err := json.Marshal(requestBodyMap)
		assert.NoError(err)
		body = bytes.NewBuffer(jsonBody)
	} else if len(rawBody) > 0 {
		body = bytes.NewBufferString(rawBody)
	}

	slog.Info("Making test request", "method", method, "endpoint", endpoint, "headers", headers)

	req, err := http.NewRequest(method, endpoint, body)
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func runHandlerTestCases(t *testing.T, router *gin.Engine, method string, endpoint string, testCases []testCase) {
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			w := makeTestHTTPRequest(router, assert, method, endpoint, testCase.requestHeaders, testCase.requestBody, testCase.rawRequestBody)
			responseBytes := w.Body.Bytes()
			assert.Equal(testCase.expectedStatus, w.Code, "response gotten was %s", string(responseBytes))

			if testCase.expectedBody != nil {
				assert.Equal(*testCase.expectedBody, string(responseBytes))
			}

			if testCase.expectedResponse != nil {
				var results []map[string]any
				err := json.Unmarshal(responseBytes, &results)
				assert.NoError(err)
				assert.ElementsMatch(testCase.expectedResponse, results)
			}
		})
	}
}
