// Package panelapi is the HTTP client for the config server's backup and
// service endpoints. The server is treated as an opaque collaborator: the
// client only knows the JSON envelopes it exchanges.
package panelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/isdelr/panel-console/internal/models"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// API is the set of upstream operations the console depends on.
type API interface {
	ListBackups(ctx context.Context) ([]models.BackupRecord, error)
	RestoreBackup(ctx context.Context, name string) (models.ActionResponse, error)
	RestartService(ctx context.Context) (models.ActionResponse, error)
}

// Paths holds the upstream endpoint paths, relative to the base URL.
type Paths struct {
	Backups string
	Restore string
	Restart string
	Setup   string // where the config form itself is posted
}

// DefaultPaths are the routes the config server registers under /admin.
var DefaultPaths = Paths{
	Backups: "/admin/backups",
	Restore: "/admin/restore",
	Restart: "/admin/restart-service",
	Setup:   "/admin/setup",
}

// Client talks to the upstream config server.
type Client struct {
	baseURL string
	paths   Paths
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to carry a cookie
// jar holding the upstream session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPaths overrides the endpoint paths.
func WithPaths(p Paths) Option {
	return func(c *Client) { c.paths = p }
}

// NewClient creates a new Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   DefaultPaths,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBackups fetches the backup list in server order.
func (c *Client) ListBackups(ctx context.Context) ([]models.BackupRecord, error) {
	const op = "list backups"
	var resp models.ListResponse
	status, err := c.do(ctx, op, http.MethodGet, c.paths.Backups, nil, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &ApplicationError{Op: op, Status: status, Message: resp.Error}
	}
	if resp.Backups == nil {
		resp.Backups = []models.BackupRecord{}
	}
	return resp.Backups, nil
}

// RestoreBackup asks the upstream to restore the named backup. The upstream
// takes its own backup of the current configuration first.
func (c *Client) RestoreBackup(ctx context.Context, name string) (models.ActionResponse, error) {
	return c.action(ctx, "restore backup", c.paths.Restore, models.RestorePayload{BackupName: name})
}

// RestartService asks the upstream to restart the managed service.
func (c *Client) RestartService(ctx context.Context) (models.ActionResponse, error) {
	return c.action(ctx, "restart service", c.paths.Restart, nil)
}

func (c *Client) action(ctx context.Context, op, path string, payload any) (models.ActionResponse, error) {
	var resp models.ActionResponse
	status, err := c.do(ctx, op, http.MethodPost, path, payload, &resp)
	if err != nil {
		return models.ActionResponse{}, err
	}
	if !resp.Success {
		return resp, &ApplicationError{Op: op, Status: status, Message: resp.Error}
	}
	return resp, nil
}

// do performs the request and decodes the JSON envelope into out. The
// envelope is decoded whatever the status code, since the upstream reports
// failures as {"success": false} with a 4xx/5xx status.
func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("%s: encode payload: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, &TransportError{Op: op, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if res.StatusCode >= 300 {
			err = errors.New(res.Status)
		}
		return res.StatusCode, &TransportError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return res.StatusCode, nil
}
