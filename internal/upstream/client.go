package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/order"
	"backoffice/internal/query"
	"backoffice/internal/table"
	"backoffice/internal/utils"
)

// Client talks to the storefront REST API. Every persistent record lives
// behind it; the back office only relays intent.
type Client struct {
	BaseURL   string
	Token     string
	HTTP      *http.Client
	RequestID string
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// ActiveProducts fetches the sellable catalog.
func (c *Client) ActiveProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.getJSON(ctx, "/products/active", nil, &out); err != nil {
		return nil, err
	}
	utils.LogEvent(c.RequestID, "upstream", "products", fmt.Sprintf("count=%d", len(out)))
	return out, nil
}

// Customers fetches the known customer list.
func (c *Client) Customers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.getJSON(ctx, "/customers", nil, &out); err != nil {
		return nil, err
	}
	utils.LogEvent(c.RequestID, "upstream", "customers", fmt.Sprintf("count=%d", len(out)))
	return out, nil
}

// ListOrders relays a table query. The rows come back already filtered,
// sorted, and paginated; the envelope is trusted as-is.
func (c *Client) ListOrders(ctx context.Context, s query.State) ([]table.Row, query.Meta, error) {
	var out ordersResponse
	if err := c.getJSON(ctx, "/orders", s.Values(), &out); err != nil {
		return nil, query.Meta{}, err
	}
	if out.Data == nil {
		out.Data = []table.Row{}
	}
	return out.Data, out.Pagination, nil
}

// Order fetches one order with its items.
func (c *Client) Order(ctx context.Context, id string) (OrderDetail, error) {
	var out OrderDetail
	err := c.getJSON(ctx, "/orders/"+id, nil, &out)
	return out, err
}

// CreateOrder submits a draft and returns the created order's id. The call
// is bearer-token authenticated.
func (c *Client) CreateOrder(ctx context.Context, d order.Draft) (string, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to encode order payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", domain.UpstreamError{Endpoint: "/orders", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var out createOrderResponse
	if err := c.do(req, "/orders", &out); err != nil {
		return "", err
	}
	if out.Order.ID == "" {
		return "", domain.UpstreamError{Endpoint: "/orders", Err: fmt.Errorf("response missing order id")}
	}
	utils.LogEvent(c.RequestID, "upstream", "create_order", "order_id="+out.Order.ID)
	return out.Order.ID, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dst any) error {
	u := c.BaseURL + endpoint
	if qs := params.Encode(); qs != "" {
		u += "?" + qs
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.UpstreamError{Endpoint: endpoint, Err: err}
	}
	c.authorize(req)
	return c.do(req, endpoint, dst)
}

func (c *Client) do(req *http.Request, endpoint string, dst any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.UpstreamError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusNotFound {
			return domain.NotFoundError{Resource: strings.TrimPrefix(endpoint, "/")}
		}
		return domain.UpstreamError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(excerpt)),
		}
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return domain.UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
