package apiclient

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

	"rfp-console/internal/apperror"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TokenSource yields the bearer token of the active session, or "".
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type tokenKey struct{}

// WithToken overrides the session token for requests made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// File is one multipart file part.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// Blob is a downloaded binary.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

type Client struct {
	BaseURL     string
	HTTP        *http.Client
	Tokens      TokenSource
	BypassNgrok bool

	tracer trace.Tracer
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, bypassNgrok bool) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTP:        &http.Client{Timeout: timeout},
		Tokens:      tokens,
		BypassNgrok: bypassNgrok,
		tracer:      otel.Tracer("rfp-console/apiclient"),
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	_, err := c.do(ctx, http.MethodGet, path, nil, "", out)
	return err
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := jsonBody(body)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, path, payload, contentType, out)
	return err
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := jsonBody(body)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, path, payload, contentType, out)
	return err
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "", out)
	return err
}

// PostForm sends an application/x-www-form-urlencoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, []byte(form.Encode()), "application/x-www-form-urlencoded", out)
	return err
}

// Upload sends fields and one file as multipart/form-data.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	field := file.Field
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, file.Name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, path, buf.Bytes(), w.FormDataContentType(), out)
	return err
}

// Download fetches a binary response.
func (c *Client) Download(ctx context.Context, path string) (*Blob, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return nil, err
	}
	return toBlob(resp), nil
}

// PostDownload posts body and returns the binary response.
func (c *Client) PostDownload(ctx context.Context, path string, body any) (*Blob, error) {
	payload, contentType, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, path, payload, contentType, nil)
	if err != nil {
		return nil, err
	}
	return toBlob(resp), nil
}

func toBlob(resp *response) *Blob {
	blob := &Blob{Data: resp.body, ContentType: resp.header.Get("Content-Type")}
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	if blob.ContentType == "" {
		blob.ContentType = http.DetectContentType(blob.Data)
	}
	return blob
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, contentType string, out any) (*response, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+routeOf(path), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.BypassNgrok {
		req.Header.Set("ngrok-skip-browser-warning", "true")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, apperror.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Network(fmt.Errorf("read response: %w", err))
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == apperror.StatusDuplicate || resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperror.FromResponse(resp.StatusCode, data)
		span.SetStatus(codes.Error, appErr.Kind.String())
		return nil, appErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *Client) token(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	if c.Tokens == nil {
		return ""
	}
	return c.Tokens.Token()
}

func jsonBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}
	return payload, "application/json", nil
}

// routeOf strips the query string and numeric segments so span names stay low-cardinality.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// Path joins segments into a URL path, escaping each one.
func Path(segments ...any) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(fmt.Sprint(s)))
	}
	return b.String()
}
