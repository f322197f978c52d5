// Package restapi implements the service.Service interface over the remote
// task service's JSON HTTP API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

// RequestIDHeader carries a per-call identifier that also appears in debug logs.
const RequestIDHeader = "X-Request-Id"

// Paths of the remote API.
const (
	pathListTasks      = "/task/getTasks"
	pathAddTask        = "/task/addTask"
	pathDeleteTask     = "/task/deleteTask/"
	pathToggleTask     = "/task/updateTask/"
	pathEditTask       = "/task/editTask/"
	pathUpdateCategory = "/task/updateCatagory/"
	pathListCategories = "/category/getAll"
	pathAddCategory    = "/category/addCategory"
)

// Client implements service.Service against the remote task API.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *log.Logger
}

// New creates a client from config. Requires an API base URL.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	base, err := cfg.BaseURL()
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(base, &http.Client{}, cfg.Timeout, logger), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// A zero timeout disables the per-call deadline.
func NewWithHTTPClient(base string, httpClient *http.Client, timeout time.Duration, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    httpClient,
		timeout: timeout,
		log:     logger,
	}
}

// SetLogOutput redirects the client's log lines, e.g. away from a
// terminal that a full-screen program owns.
func (c *Client) SetLogOutput(w io.Writer) {
	c.log.SetOutput(w)
}

// ListTasks returns the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var resp []wireTask
	if err := c.do(ctx, http.MethodGet, pathListTasks, nil, &resp); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(resp))
	for _, t := range resp {
		tasks = append(tasks, t.toService())
	}
	return tasks, nil
}

// CreateTask creates a new pending task.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	req := createTaskRequest{
		Title:     task.Title,
		Completed: formatCompleted(false),
	}
	if task.CategoryID != 0 {
		req.Category = &categoryRef{ID: task.CategoryID}
	}

	var resp wireTask
	if err := c.do(ctx, http.MethodPost, pathAddTask, req, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.toService(), nil
}

// DeleteTask deletes a task. Any response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, pathDeleteTask+formatID(id), nil, nil)
}

// ToggleTask asks the server to flip the task's completed flag.
func (c *Client) ToggleTask(ctx context.Context, id int64) (service.Task, error) {
	var resp wireTask
	if err := c.do(ctx, http.MethodPut, pathToggleTask+formatID(id), nil, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.toService(), nil
}

// EditTaskTitle replaces the task's title.
func (c *Client) EditTaskTitle(ctx context.Context, id int64, title string) (service.Task, error) {
	var resp wireTask
	if err := c.do(ctx, http.MethodPut, pathEditTask+formatID(id), editTaskRequest{Title: title}, &resp); err != nil {
		return service.Task{}, err
	}
	return resp.toService(), nil
}

// UpdateTaskCategory associates a task with a category. The response is ignored.
func (c *Client) UpdateTaskCategory(ctx context.Context, id, categoryID int64) error {
	req := updateCategoryRequest{Category: categoryID}
	return c.do(ctx, http.MethodPut, pathUpdateCategory+formatID(id), req, nil)
}

// ListCategories returns the full category collection.
func (c *Client) ListCategories(ctx context.Context) ([]service.Category, error) {
	var resp []wireCategory
	if err := c.do(ctx, http.MethodGet, pathListCategories, nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]service.Category, 0, len(resp))
	for _, cat := range resp {
		categories = append(categories, cat.toService())
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (service.Category, error) {
	var resp wireCategory
	if err := c.do(ctx, http.MethodPost, pathAddCategory, createCategoryRequest{Name: name}, &resp); err != nil {
		return service.Category{}, err
	}
	if resp.ID == 0 {
		return service.Category{}, fmt.Errorf("create category: response has no id")
	}
	return resp.toService(), nil
}

// do performs one JSON request. A nil body sends no payload; a nil out
// discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-cache")
	}

	c.log.Debug("request", "method", method, "path", path, "request_id", requestID)

	res, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		c.log.Debug("response", "path", path, "status", res.StatusCode, "request_id", requestID)
		return wrapError(err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// wrapError wraps API errors with user-friendly messages.
// Non-success statuses become *service.StatusError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = strings.TrimSpace(gerr.Body)
		}
		switch gerr.Code {
		case http.StatusNotFound:
			msg = "not found"
		case http.StatusBadRequest:
			if msg == "" {
				msg = "bad request"
			}
		}
		return &service.StatusError{Code: gerr.Code, Message: msg}
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	return err
}
