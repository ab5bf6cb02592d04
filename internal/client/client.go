// Package client talks to the users admin API and normalizes every failure into *HTTPError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	hc      *http.Client
	session Session
	log     *zap.Logger
	retry   RetryConfig
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }
func WithSession(s Session) Option         { return func(c *Client) { c.session = s } }
func WithLogger(l *zap.Logger) Option       { return func(c *Client) { c.log = l } }
func WithRetry(r RetryConfig) Option        { return func(c *Client) { c.retry = r } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		session: NewMemorySession(""),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Session() Session { return c.session }

// Authenticated 是否持有令牌（不校验有效性）
func (c *Client) Authenticated(ctx context.Context) bool {
	_, ok := c.session.Token(ctx)
	return ok
}

type RequestOptions struct {
	Method  string // 默认 GET
	Body    any    // 非 nil 时 JSON 编码并带 Content-Type
	Headers http.Header
}

// Request 发送请求并把响应体解析进 out（json 内容解码；文本内容仅支持 *string）。
// 非 2xx 返回 *HTTPError；204 直接成功不读取响应体。
func (c *Client) Request(ctx context.Context, path string, opt RequestOptions, out any) error {
	method := opt.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if opt.Body != nil {
		b, err := json.Marshal(opt.Body)
		if err != nil {
			return &HTTPError{Message: "encode request body: " + err.Error(), Err: err}
		}
		payload = b
	}

	send := func(ctx context.Context) error {
		return c.do(ctx, method, path, payload, opt, out)
	}
	if method == http.MethodGet {
		return doWithRetry(ctx, c.retry, send)
	}
	return send(ctx)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, opt RequestOptions, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &HTTPError{Message: "create request: " + err.Error(), Err: err}
	}
	for k, vs := range opt.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := c.session.Token(ctx); ok && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &HTTPError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &HTTPError{Message: "read response: " + err.Error(), Status: resp.StatusCode, Err: err}
	}
	isJSON := strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp.StatusCode, isJSON, raw)
	}
	return decodeBody(isJSON, raw, out, resp.StatusCode)
}

func decodeBody(isJSON bool, raw []byte, out any, status int) error {
	if out == nil {
		return nil
	}
	if !isJSON {
		if s, ok := out.(*string); ok {
			*s = string(raw)
			return nil
		}
		return &HTTPError{Message: "unexpected non-JSON response", Status: status, Data: string(raw)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &HTTPError{Message: "decode response: " + err.Error(), Status: status, Err: err}
	}
	return nil
}

// errorFromResponse 消息优先级：JSON 的 error 字段 > 文本响应体 > 通用提示
func errorFromResponse(status int, isJSON bool, raw []byte) *HTTPError {
	he := &HTTPError{Status: status}
	if isJSON {
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			he.Data = data
			if m, ok := data.(map[string]any); ok {
				if msg, ok := m["error"].(string); ok && msg != "" {
					he.Message = msg
				}
			}
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		he.Data = text
		he.Message = text
	}
	if he.Message == "" {
		he.Message = failedMessage(status)
	}
	return he
}

var errNoToken = errors.New("login response carried no token")
