// Package client is the Go client for the snackbar API: REST calls, the order
// submission flow and the live-update socket consumer. Every call takes a
// context so an abandoned screen can cancel its in-flight requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/gbswdev/snackbar/core/cheer"
	"github.com/gbswdev/snackbar/core/item"
	"github.com/gbswdev/snackbar/core/order"
	"github.com/gbswdev/snackbar/core/user"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(baseURL string) *Client {
	return &Client{base: baseURL, http: http.DefaultClient}
}

// SetToken sets the bearer token attached to subsequent requests. Login does
// this automatically.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshalling request body")
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &body); err == nil {
			if body.Error != "" {
				apiErr.Message = body.Error
			} else {
				apiErr.Message = body.Message
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "unmarshalling response body")
		}
	}
	return nil
}

type LoginResult struct {
	Role  string    `json:"role"`
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// Login authenticates within the given role's records and keeps the returned
// token for subsequent calls.
func (c *Client) Login(ctx context.Context, id, password, role string) (LoginResult, error) {
	var res LoginResult
	body := map[string]string{"id": id, "password": password, "role": role}
	if err := c.do(ctx, http.MethodPost, "/auth", body, &res); err != nil {
		return LoginResult{}, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) Items(ctx context.Context) ([]item.Item, error) {
	var items []item.Item
	err := c.do(ctx, http.MethodGet, "/items", nil, &items)
	return items, err
}

// Orders lists orders, newest first. An empty studentName returns all of them.
func (c *Client) Orders(ctx context.Context, studentName string) ([]order.Order, error) {
	path := "/orders"
	if studentName != "" {
		path += "?studentName=" + url.QueryEscape(studentName)
	}
	var orders []order.Order
	err := c.do(ctx, http.MethodGet, path, nil, &orders)
	return orders, err
}

func (c *Client) SubmitOrder(ctx context.Context, no order.NewOrder) (order.Order, error) {
	var ord order.Order
	err := c.do(ctx, http.MethodPost, "/orders", no, &ord)
	return ord, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (order.Order, error) {
	var ord order.Order
	err := c.do(ctx, http.MethodPatch, "/orders/"+id, map[string]string{"status": status}, &ord)
	return ord, err
}

func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+id, nil, nil)
}

func (c *Client) PopularMenus(ctx context.Context) ([]order.MenuCount, error) {
	var counts []order.MenuCount
	err := c.do(ctx, http.MethodGet, "/orders/popular", nil, &counts)
	return counts, err
}

// CheerToday lists today's cheer messages, optionally filtered by target.
func (c *Client) CheerToday(ctx context.Context, target string) ([]cheer.Cheer, error) {
	path := "/cheer/today"
	if target != "" {
		path += "?target=" + url.QueryEscape(target)
	}
	var cheers []cheer.Cheer
	err := c.do(ctx, http.MethodGet, path, nil, &cheers)
	return cheers, err
}

func (c *Client) PostCheer(ctx context.Context, nc cheer.NewCheer) (cheer.Cheer, error) {
	var ch cheer.Cheer
	err := c.do(ctx, http.MethodPost, "/cheer", nc, &ch)
	return ch, err
}
