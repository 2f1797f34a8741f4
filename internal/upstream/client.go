// Package upstream is the HTTP client for the remote cart API. It translates
// intents into requests and failures into the domain error taxonomy; it does
// not validate quantities or touch local state.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"covercart/internal/domain"
)

// Client talks to the cart API under baseURL (for example
// "http://localhost:5000/api").
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client. httpClient may be nil, in which case a client with a
// request timeout is used.
func New(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// ResolveUserID maps an authenticated email to the user id owning the cart.
func (c *Client) ResolveUserID(ctx context.Context, email string) (string, error) {
	const op = "resolve user id"
	var out struct {
		UserID string `json:"userId"`
	}
	path := "/users/getUserId/" + url.PathEscape(email)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", domain.ErrNotFound
	}
	return out.UserID, nil
}

// FetchCart retrieves the full cart document for a user. Entries whose
// product reference did not resolve decode with a nil Product; filtering
// them is the store's job.
func (c *Client) FetchCart(ctx context.Context, userID string) (domain.Cart, error) {
	const op = "fetch cart"
	var cart domain.Cart
	path := "/cart/" + url.PathEscape(userID)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &cart); err != nil {
		return domain.Cart{}, err
	}
	cart.UserID = userID
	return cart, nil
}

// RemoveItem deletes one line from the user's cart.
func (c *Client) RemoveItem(ctx context.Context, userID, productID string) error {
	path := "/cart/" + url.PathEscape(userID) + "/item/" + url.PathEscape(productID)
	return c.do(ctx, "remove item", http.MethodDelete, path, nil, nil)
}

// SetQuantity replaces the quantity of one line. The caller guarantees
// quantity >= 1; the server sees only the final value, never a delta.
func (c *Client) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	path := "/cart/" + url.PathEscape(userID) + "/item/" + url.PathEscape(productID)
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, "set quantity", http.MethodPatch, path, body, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("%s: request failed: %v", op, err)
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("%s: status %d", op, resp.StatusCode)
		return &domain.NetworkError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
