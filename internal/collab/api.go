package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/endpoints"
)

// ErrRelativeURL is returned when the API base yields a relative URL and no
// origin was given to resolve it against.
var ErrRelativeURL = errors.New("relative API URL needs an origin")

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient() HTTPClient {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Message)
}

type FileNode struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Path      string     `json:"path"`
	ParentID  *string    `json:"parentId"`
	UpdatedAt string     `json:"updatedAt,omitempty"`
	Children  []FileNode `json:"children,omitempty"`
}

type FileContent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

type User struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Created  bool   `json:"created"`
}

// APIClient calls the REST API at the URLs produced by endpoints.APIURL.
type APIClient struct {
	endpoints  endpoints.Endpoints
	origin     *url.URL
	httpClient HTTPClient
	logger     zerolog.Logger
}

// NewAPIClient builds a client. origin may be empty when the API base is an
// absolute URL; httpClient may be nil.
func NewAPIClient(ep endpoints.Endpoints, origin string, httpClient HTTPClient, logger zerolog.Logger) (*APIClient, error) {
	c := &APIClient{
		endpoints:  ep,
		httpClient: httpClient,
		logger:     logger,
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient()
	}
	if origin != "" {
		u, err := url.Parse(origin)
		if err != nil {
			return nil, fmt.Errorf("failed to parse origin %q: %w", origin, err)
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("origin %q must be absolute", origin)
		}
		c.origin = u
	}
	return c, nil
}

// URL resolves path to the absolute URL the client will request.
func (c *APIClient) URL(path string) (string, error) {
	raw := c.endpoints.APIURL(path)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse API URL %q: %w", raw, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if c.origin == nil {
		return "", fmt.Errorf("%w: %q", ErrRelativeURL, raw)
	}
	return c.origin.ResolveReference(u).String(), nil
}

// FileTree returns the virtual file tree of roomID. The backend seeds a
// default project for rooms without files.
func (c *APIClient) FileTree(ctx context.Context, roomID string) ([]FileNode, error) {
	path := "/api/files/"
	if roomID != "" {
		path += "?room_id=" + url.QueryEscape(roomID)
	}
	var resp struct {
		Tree []FileNode `json:"tree"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tree, nil
}

func (c *APIClient) FileContent(ctx context.Context, fileID string) (*FileContent, error) {
	var resp FileContent
	if err := c.do(ctx, http.MethodGet, "/api/files/content/?id="+url.QueryEscape(fileID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrCreateUser returns the collaborator identity for clientID, creating
// one with a random name and color on first use.
func (c *APIClient) GetOrCreateUser(ctx context.Context, clientID string) (*User, error) {
	body := map[string]string{"client_id": clientID}
	var resp User
	if err := c.do(ctx, http.MethodPost, "/api/user/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	target, err := c.URL(path)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request finished")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", target, err)
		}
	}
	return nil
}
