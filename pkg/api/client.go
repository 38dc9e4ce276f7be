// Package api is a thin client for the remote todo service. Every
// operation is one request/response pair: no retries, no caching, the
// service is the sole source of truth.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const totalCountHeader = "X-Total-Count"

// Client issues requests against a fixed base URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL. A zero timeout
// leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// List fetches one page of todos. params.Page is 1-based; the wire page
// is 0-based. The total matching count comes back in the X-Total-Count
// header and is surfaced as ListResult.TotalCount.
func (c *Client) List(ctx context.Context, params ListParams) (ListResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page-1))
	query.Set("size", strconv.Itoa(params.Size))
	query.Set("sortBy", params.SortBy)
	query.Set("sortOrder", params.SortOrder)

	if params.TextFilter != "" {
		query.Set("textFilter", params.TextFilter)
	}

	if params.PriorityFilter != "" {
		query.Set("priorityFilter", params.PriorityFilter)
	}

	if params.DoneFilter != "" {
		query.Set("doneFilter", params.DoneFilter)
	}

	var todos []Todo

	header, err := c.do(ctx, "list todos", http.MethodGet, "/todos?"+query.Encode(), nil, &todos)
	if err != nil {
		return ListResult{}, err
	}

	total, err := strconv.Atoi(header.Get(totalCountHeader))
	if err != nil {
		return ListResult{}, fmt.Errorf("list todos: error reading %s header: %w", totalCountHeader, err)
	}

	return ListResult{Todos: todos, TotalCount: total}, nil
}

// Create persists a new todo and returns it as stored by the service.
func (c *Client) Create(ctx context.Context, draft Draft) (Todo, error) {
	var todo Todo

	_, err := c.do(ctx, "create todo", http.MethodPost, "/todos", draft, &todo)

	return todo, err
}

// Update replaces the writable fields of an existing todo.
func (c *Client) Update(ctx context.Context, id string, draft Draft) (Todo, error) {
	var todo Todo

	_, err := c.do(ctx, "update todo", http.MethodPut, "/todos/"+url.PathEscape(id), draft, &todo)

	return todo, err
}

// Delete removes a todo.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete todo", http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)

	return err
}

// MarkDone flags a todo as completed. Marking an already-done todo is a
// no-op success on the service side.
func (c *Client) MarkDone(ctx context.Context, id string) (Todo, error) {
	var todo Todo

	_, err := c.do(ctx, "mark done", http.MethodPost, "/todos/"+url.PathEscape(id)+"/done", nil, &todo)

	return todo, err
}

// MarkUndone clears the completion flag of a todo.
func (c *Client) MarkUndone(ctx context.Context, id string) (Todo, error) {
	var todo Todo

	_, err := c.do(ctx, "mark undone", http.MethodPut, "/todos/"+url.PathEscape(id)+"/undone", nil, &todo)

	return todo, err
}

// Metrics fetches the completion-time summary.
func (c *Client) Metrics(ctx context.Context) (Metrics, error) {
	metrics := Metrics{AverageTimeByPriority: map[Priority]float64{}}

	_, err := c.do(ctx, "get metrics", http.MethodGet, "/todos/metrics", nil, &metrics)

	return metrics, err
}

// do sends one request and decodes the response into out (when non-nil).
// It returns the response header so List can read the count.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (http.Header, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: error encoding request: %w", op, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: error building request: %w", op, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("%s: error decoding response: %w", op, err)
		}
	}

	return resp.Header, nil
}
