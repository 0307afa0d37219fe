// Package client provides a Go client library for the Tucluster API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Client is the Tucluster API client.
type Client struct {
	baseURL    string
	token      string
	debug      bool
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Debug logs every request and its response status to stderr.
	Debug bool
}

// NewClient creates a new Tucluster API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		debug:   cfg.Debug,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CreateModel creates an empty model with the given metadata.
func (c *Client) CreateModel(ctx context.Context, name, description, email string) (*Model, error) {
	body, err := json.Marshal(Model{
		Name:        name,
		Description: description,
		Email:       email,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, "POST", "/models", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result Model
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Models lists all models.
func (c *Client) Models(ctx context.Context) ([]Model, error) {
	resp, err := c.doRequest(ctx, "GET", "/models", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result []Model
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}

// Model fetches a single model by name. When tree is true the response
// includes the model's data tree.
func (c *Client) Model(ctx context.Context, name string, tree bool) (*Model, error) {
	path := "/models/" + url.PathEscape(name)
	if tree {
		path += "?tree=true"
	}

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result Model
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateModel patches a model's metadata. The model is addressed by its
// current name; a non-empty patch.Name renames it.
func (c *Client) UpdateModel(ctx context.Context, name string, patch ModelPatch) (*Model, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, "PATCH", "/models/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result Model
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UploadModelArchive streams a zip archive of input data to the server,
// which derives a model from it. The returned model carries the
// server-chosen name; use it to address follow-up metadata patches.
// fn, if non-nil, is called with byte deltas as the upload progresses.
func (c *Client) UploadModelArchive(ctx context.Context, path string, fn ProgressFunc) (*Model, error) {
	resp, err := c.uploadFile(ctx, "/models/archive", path, fn)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result Model
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// AddModelFile streams a single file into an existing model's data tree.
func (c *Client) AddModelFile(ctx context.Context, name, path string, fn ProgressFunc) error {
	resp, err := c.uploadFile(ctx, "/models/"+url.PathEscape(name)+"/files", path, fn)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	return nil
}

// CreateRun queues simulation runs for a model. The server queues one run
// per matched entry-point script and returns a receipt for each.
func (c *Client) CreateRun(ctx context.Context, spec RunSpec) ([]RunReceipt, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, "POST", "/runs", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusMultiStatus {
		return nil, c.parseError(resp)
	}

	var result []RunReceipt
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}

// Results fetches run results matching the filter. Empty filter fields
// are not sent.
func (c *Client) Results(ctx context.Context, filter ResultFilter) ([]Result, error) {
	q := url.Values{}
	if filter.TaskID != "" {
		q.Set("task", filter.TaskID)
	}
	if filter.Model != "" {
		q.Set("model", filter.Model)
	}
	if filter.Script != "" {
		q.Set("script", filter.Script)
	}

	path := "/results"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result []Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}

// DownloadFile streams a result file identified by fid into w and returns
// the server-supplied filename, falling back to the fid when the server
// sends none. fn, if non-nil, is called with byte deltas as data arrives.
func (c *Client) DownloadFile(ctx context.Context, fid string, w io.Writer, fn ProgressFunc) (string, error) {
	resp, err := c.doRequest(ctx, "GET", "/files/"+url.PathEscape(fid), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.parseError(resp)
	}

	name := fid
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			name = params["filename"]
		}
	}

	src := io.Reader(resp.Body)
	if fn != nil {
		src = &progressReader{r: resp.Body, fn: fn}
	}

	if _, err := io.Copy(w, src); err != nil {
		return "", fmt.Errorf("download %s: %w", fid, err)
	}

	return name, nil
}

// uploadFile streams one local file to path as a multipart form request.
// The body is piped so large archives are never buffered whole.
func (c *Client) uploadFile(ctx context.Context, path, filePath string, fn ProgressFunc) (*http.Response, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}

	src := io.Reader(file)
	if fn != nil {
		src = &progressReader{r: file, fn: fn}
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer file.Close()
		part, err := writer.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, pr)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// doRequest makes an authenticated HTTP request.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if c.debug {
		if err != nil {
			log.Printf("tuga: %s %s: %v", req.Method, req.URL.Path, err)
		} else {
			log.Printf("tuga: %s %s -> %s", req.Method, req.URL.Path, resp.Status)
		}
	}
	return resp, err
}

// parseError parses an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, errResp.Error)
	}

	return fmt.Errorf("%s: %s", resp.Status, string(body))
}
