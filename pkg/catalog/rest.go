package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/esil-events/chatbot/pkg/models"
)

// RESTStore searches the catalog through the store's REST endpoint
// (PostgREST dialect) using the anonymous key.
type RESTStore struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// NewRESTStore creates a RESTStore for the given store URL and key.
func NewRESTStore(baseURL, anonKey string) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns products whose name contains the query, newest first.
func (s *RESTStore) Search(ctx context.Context, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("name", "ilike.*"+query+"*")
	params.Set("order", "created_at.desc")

	endpoint := s.baseURL + "/rest/v1/products?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %d: %s", resp.StatusCode, body)
	}

	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return products, nil
}
