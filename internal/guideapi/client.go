package guideapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the subset of the generator API the workflow depends on.
// *Client implements it; tests substitute fakes.
type Backend interface {
	ListFiles(ctx context.Context) ([]DriveFile, error)
	AccessToken(ctx context.Context) (string, error)
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Health(ctx context.Context) (HealthResponse, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Form field names expected by POST /api/generate.
const (
	FieldSeriesTitle    = "series_title"
	FieldTargetAudience = "target_audience"
	FieldModel          = "model"
	FieldFileIDs        = "file_ids"
)

const (
	defaultServerURL       = "http://127.0.0.1:8080"
	defaultCookieName      = "session"
	defaultUserAgent       = "lectio/0.1"
	defaultRequestTimeout  = 10 * time.Second
	defaultGenerateTimeout = 11 * time.Minute
	maxErrorBody           = 64 << 10
	maxPlainDetail         = 200
)

// Options configure a Client.
type Options struct {
	ServerURL       string
	SessionCookie   string
	CookieName      string
	UserAgent       string
	RequestTimeout  time.Duration
	GenerateTimeout time.Duration
	Logger          *zap.Logger
}

// Client talks to the study guide generator HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	generate   *http.Client
	cookieName string
	session    string
	userAgent  string
	log        *zap.Logger
}

// NewClient builds a Client for the backend at opts.ServerURL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.ServerURL)
	if err != nil {
		return nil, err
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	generateTimeout := opts.GenerateTimeout
	if generateTimeout <= 0 {
		generateTimeout = defaultGenerateTimeout
	}
	cookieName := strings.TrimSpace(opts.CookieName)
	if cookieName == "" {
		cookieName = defaultCookieName
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: requestTimeout},
		generate:   &http.Client{Timeout: generateTimeout},
		cookieName: cookieName,
		session:    strings.TrimSpace(opts.SessionCookie),
		userAgent:  userAgent,
		log:        logger.Named("guideapi"),
	}, nil
}

// BaseURL returns the normalised backend URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListFiles returns the Drive text files the backend can see.
func (c *Client) ListFiles(ctx context.Context) ([]DriveFile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	const op = "list files"
	var payload ListFilesResponse
	if err := c.do(ctx, c.http, op, http.MethodGet, "/api/list-files", nil, "", &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &ServerError{Op: op, Detail: payload.Detail}
	}
	return payload.Files, nil
}

// AccessToken fetches the OAuth access token the picker uses against Drive.
// Every failure is reported as an *AuthError.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c == nil {
		return "", &AuthError{Err: fmt.Errorf("client is nil")}
	}
	var payload AccessTokenResponse
	if err := c.do(ctx, c.http, "access token", http.MethodGet, "/api/access-token", nil, "", &payload); err != nil {
		return "", &AuthError{Err: err}
	}
	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", &AuthError{Err: fmt.Errorf("backend returned an empty token")}
	}
	return token, nil
}

// Generate submits the selected files and form fields to the generator.
// A success=false payload is returned together with a *ServerError.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if c == nil {
		return GenerateResponse{}, fmt.Errorf("client is nil")
	}
	const op = "generate"
	body, contentType, err := encodeGenerateForm(req)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("encode form: %w", err)
	}
	var payload GenerateResponse
	if err := c.do(ctx, c.generate, op, http.MethodPost, "/api/generate", body, contentType, &payload); err != nil {
		return GenerateResponse{}, err
	}
	if !payload.Success {
		return payload, &ServerError{Op: op, Detail: payload.Detail}
	}
	return payload, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	if c == nil {
		return HealthResponse{}, fmt.Errorf("client is nil")
	}
	var payload HealthResponse
	if err := c.do(ctx, c.http, "health", http.MethodGet, "/health", nil, "", &payload); err != nil {
		return HealthResponse{}, err
	}
	return payload, nil
}

func encodeGenerateForm(req GenerateRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{FieldSeriesTitle, req.SeriesTitle},
		{FieldTargetAudience, req.TargetAudience},
		{FieldModel, req.Model},
		{FieldFileIDs, req.JoinedFileIDs()},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, op, method, path string, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})
	}

	log := c.log.With(zap.String("op", op), zap.String("request_id", requestID), zap.String("path", path))
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	log.Debug("request done", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readDetail(resp.Header.Get("Content-Type"), resp.Body)
		log.Warn("request rejected", zap.Int("status", resp.StatusCode), zap.String("detail", detail))
		return &ServerError{Op: op, Status: resp.StatusCode, Detail: detail}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		log.Warn("decode failed", zap.Error(err))
		return &ServerError{Op: op, Status: resp.StatusCode, Detail: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// readDetail extracts FastAPI's detail field. A short text/plain body is used
// as-is; anything else, such as a proxy's HTML error page, yields no detail.
func readDetail(contentType string, r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		return detailString(body.Detail)
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	text := strings.TrimSpace(string(raw))
	if mediaType != "text/plain" || len(text) > maxPlainDetail {
		return ""
	}
	return text
}

func detailString(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok {
					parts = append(parts, msg)
					continue
				}
			}
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(d)
	}
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server url %q: missing host", serverURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
