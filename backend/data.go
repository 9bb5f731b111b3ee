package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Product is a row from the data service's product table.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	Category  string  `json:"category,omitempty"`
}

// Invoice is a row from the data service's invoice table.
type Invoice struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"` // "paid" or "unpaid"
	CreatedAt    time.Time `json:"created_at"`
}

// DataClient issues typed read queries against the data service. Writes go
// through the tool service, never here.
type DataClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewDataClient creates a data-service client.
func NewDataClient(baseURL string, tokens TokenSource) *DataClient {
	return &DataClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
}

// GetProducts fetches all products belonging to a user.
func (c *DataClient) GetProducts(ctx context.Context, userID string) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "products", userID, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetInvoices fetches all invoices belonging to a user.
func (c *DataClient) GetInvoices(ctx context.Context, userID string) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.get(ctx, "invoices", userID, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *DataClient) get(ctx context.Context, resource, userID string, out any) error {
	endpoint := fmt.Sprintf("%s/%s?user_id=%s", c.baseURL, resource, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", resource, err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("data service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resource, err)
	}

	return nil
}
