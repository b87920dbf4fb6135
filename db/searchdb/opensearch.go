package searchdb

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/meghashyamc/booksearch/config"
	"github.com/meghashyamc/booksearch/logger"
	external "github.com/opensearch-project/opensearch-go/v2"
	api "github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

const cloudIDScheme = "https://"

type OpenSearchDB struct {
	client    *external.Client
	transport *http.Transport
	index     string
	logger    logger.Logger
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func NewOpenSearchDB(logger logger.Logger, cfg config.Engine) (*OpenSearchDB, error) {
	addresses := cfg.Addresses
	if len(addresses) == 0 && len(cfg.CloudID) > 0 {
		address, err := addressFromCloudID(cfg.CloudID)
		if err != nil {
			logger.Error("could not decode cloud id", "err", err.Error())
			return nil, err
		}
		addresses = []string{address}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client, err := external.NewClient(external.Config{
		Transport:    transport,
		Addresses:    addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
	})
	if err != nil {
		logger.Error("could not create opensearch client", "err", err.Error())
		return nil, err
	}

	return &OpenSearchDB{
		client:    client,
		transport: transport,
		index:     cfg.Index,
		logger:    logger,
	}, nil
}

// addressFromCloudID decodes "<label>:<base64(host$es-uuid$kibana-uuid)>".
func addressFromCloudID(cloudID string) (string, error) {
	separator := strings.LastIndex(cloudID, ":")
	if separator < 0 {
		return "", fmt.Errorf("invalid cloud id %q: missing ':'", cloudID)
	}

	decoded, err := base64.StdEncoding.DecodeString(cloudID[separator+1:])
	if err != nil {
		return "", fmt.Errorf("invalid cloud id: %w", err)
	}

	parts := strings.Split(string(decoded), "$")
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", fmt.Errorf("invalid cloud id: unexpected encoded value %q", string(decoded))
	}

	return fmt.Sprintf("%s%s.%s", cloudIDScheme, parts[1], parts[0]), nil
}

func (s *OpenSearchDB) Search(ctx context.Context, field string, query string, fields []string) ([]Document, error) {
	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"match": map[string]any{field: query},
		},
		"_source": fields,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode search request: %w", err)
	}

	req := api.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}

	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, s.responseError("search documents", resp)
	}

	var parsed searchResponse
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}

	documents := make([]Document, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		document := make(Document, len(fields))
		for _, name := range fields {
			if value, ok := hit.Source[name]; ok {
				document[name] = value
			}
		}
		documents = append(documents, document)
	}

	s.logger.Debug("[opensearch] search completed", "index", s.index, "field", field, "hits", len(documents))

	return documents, nil
}

func (s *OpenSearchDB) Delete(ctx context.Context, id string) error {
	// the client writes the id into the request path as-is
	req := api.DeleteRequest{
		Index:      s.index,
		DocumentID: url.PathEscape(id),
	}

	resp, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return s.responseError("delete document", resp)
	}

	s.logger.Info("[opensearch] document deleted", "index", s.index, "id", id)

	return nil
}

func (s *OpenSearchDB) responseError(operation string, resp *api.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Warn("[opensearch] could not read error response", "err", err.Error())
	}

	return &ResponseError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status(),
		Body:       string(body),
	}
}

func (s *OpenSearchDB) Close() error {
	s.transport.CloseIdleConnections()
	return nil
}
