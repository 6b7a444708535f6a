package clockwork

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnexpectedStatus is returned for any backend answer other than 200.
var ErrUnexpectedStatus = errors.New("something went wrong on api server")

// Doer 抽象 http.Client 的 Do 方法，便于在测试中用 mock 实现替换。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoint selects which job listing the backend is asked for.
type Endpoint string

const (
	EndpointList   Endpoint = "list"   // GET /jobs/list
	EndpointSearch Endpoint = "search" // GET /jobs/search
	EndpointAPI    Endpoint = "api"    // POST /jobs/api/list
)

func ParseEndpoint(s string) (Endpoint, error) {
	switch e := Endpoint(strings.ToLower(s)); e {
	case EndpointList, EndpointSearch, EndpointAPI:
		return e, nil
	default:
		return "", fmt.Errorf("unknown jobs endpoint %q", s)
	}
}

// Client is the HTTP client for the Clockwork REST backend.
type Client struct {
	client  Doer
	base    *url.URL
	timeout time.Duration
	session []*http.Cookie
	logger  *slog.Logger
}

// New creates a client for the backend at base. A zero timeout leaves requests
// bounded only by the caller's context.
func New(client Doer, base *url.URL, timeout time.Duration, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client:  client,
		base:    base,
		timeout: timeout,
		logger:  logger,
	}
}

// SetSessionCookie sets the cookie sent when the context carries none.
func (c *Client) SetSessionCookie(name, value string) {
	if name == "" || value == "" {
		c.session = nil
		return
	}
	c.session = []*http.Cookie{{Name: name, Value: value}}
}

type cookiesKey struct{}

// WithCookies attaches the browser's cookies to ctx so that backend calls are
// made under the same identity.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

// CookiesFromContext returns the cookies attached by WithCookies.
func CookiesFromContext(ctx context.Context) []*http.Cookie {
	cs, _ := ctx.Value(cookiesKey{}).([]*http.Cookie)
	return cs
}

func (c *Client) cookies(ctx context.Context) []*http.Cookie {
	if cs := CookiesFromContext(ctx); len(cs) > 0 {
		return cs
	}
	return c.session
}

// AnonymousSession is the session key of callers that send no cookie at all.
const AnonymousSession = "anonymous"

// SessionKey 根据 cookie 集合生成稳定且不可逆的会话标识, 与 cookie 顺序无关.
func SessionKey(cookies []*http.Cookie) string {
	if len(cookies) == 0 {
		return AnonymousSession
	}
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	sort.Strings(pairs)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(pairs, "; "))).String()
}

// SessionKey identifies the backend identity requests made with ctx run under:
// the browser's cookies, else the configured session cookie.
func (c *Client) SessionKey(ctx context.Context) string {
	return SessionKey(c.cookies(ctx))
}

func (c *Client) resolve(path string, q url.Values) *url.URL {
	u := c.base.JoinPath(path)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u
}

// do issues one request and decodes a 200 answer into out (when out is not nil).
func (c *Client) do(ctx context.Context, method string, u *url.URL, body any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		c.logger.Error("unable to create request for clockwork", "err", err.Error(), "url", u.String())
		return fmt.Errorf("unable to create request for clockwork: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies(ctx) {
		req.AddCookie(ck)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to do request for clockwork(%s): %w", u.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code", "code", resp.StatusCode, "url", u.String())
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("unable to decode clockwork response", "err", err.Error(), "url", u.String())
		return fmt.Errorf("unable to decode clockwork response: %w", err)
	}
	return nil
}

// ListJobs 获取作业列表, username 为 "all" 或空时不过滤用户.
//   - GET /jobs/list?want_json=True&username=<name>
func (c *Client) ListJobs(ctx context.Context, username string) (JobsResponse, error) {
	q := url.Values{}
	q.Set("want_json", "True")
	setUsername(q, username)

	var data JobsResponse
	if err := c.do(ctx, http.MethodGet, c.resolve("/jobs/list", q), nil, &data); err != nil {
		return JobsResponse{}, err
	}
	return data, nil
}

// SearchJobs 通过搜索接口获取作业, 返回结果同时带有总数.
//   - GET /jobs/search?want_json=True&want_count=True&username=<name>
func (c *Client) SearchJobs(ctx context.Context, username string) (JobsResponse, error) {
	q := url.Values{}
	q.Set("want_json", "True")
	q.Set("want_count", "True")
	setUsername(q, username)

	var data JobsResponse
	if err := c.do(ctx, http.MethodGet, c.resolve("/jobs/search", q), nil, &data); err != nil {
		return JobsResponse{}, err
	}
	return data, nil
}

// APIListJobs posts to /jobs/api/list. A nil filter sends no body.
func (c *Client) APIListJobs(ctx context.Context, filter *APIQueryFilter) ([]FlatJob, error) {
	var body any
	if filter != nil {
		body = struct {
			QueryFilter APIQueryFilter `json:"query_filter"`
		}{*filter}
	}

	data := make([]FlatJob, 0)
	if err := c.do(ctx, http.MethodPost, c.resolve("/jobs/api/list", nil), body, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// FetchJobs queries the endpoint variant ep and always answers in the
// {jobs, nbr_total_jobs} shape. The time window is only understood by the
// POST variant.
func (c *Client) FetchJobs(ctx context.Context, ep Endpoint, username string, timeWindow int) (JobsResponse, error) {
	switch ep {
	case EndpointSearch:
		return c.SearchJobs(ctx, username)
	case EndpointAPI:
		var filter *APIQueryFilter
		if !isAll(username) || timeWindow > 0 {
			filter = &APIQueryFilter{Time: timeWindow}
			if !isAll(username) {
				filter.Username = username
			}
		}
		flat, err := c.APIListJobs(ctx, filter)
		if err != nil {
			return JobsResponse{}, err
		}
		jobs := make(Jobs, 0, len(flat))
		for _, f := range flat {
			jobs = append(jobs, f.Job())
		}
		return JobsResponse{Jobs: jobs, NbrTotalJobs: len(jobs)}, nil
	default:
		return c.ListJobs(ctx, username)
	}
}

// WriteSetting 写入用户偏好设置, 仅检查状态码, 响应内容被忽略.
//   - GET /settings/web/<path>?<params>
func (c *Client) WriteSetting(ctx context.Context, path string, params url.Values) error {
	return c.do(ctx, http.MethodGet, c.resolve("/settings/web/"+strings.TrimPrefix(path, "/"), params), nil, nil)
}

// FolderAncestors fetches the folder hierarchy and notes around jid.
func (c *Client) FolderAncestors(ctx context.Context, jid string) (Hierarchy, error) {
	var h Hierarchy
	u := c.resolve("/joplin_live/mono/ancestors_folders_of_single_folder/"+url.PathEscape(jid), nil)
	if err := c.do(ctx, http.MethodGet, u, nil, &h); err != nil {
		return Hierarchy{}, err
	}
	return h, nil
}

// ConvertMarkdown asks the backend to render a note body as HTML.
func (c *Client) ConvertMarkdown(ctx context.Context, markdown string) (string, error) {
	body := struct {
		BodyAsMarkdown string `json:"body_as_markdown"`
	}{markdown}
	var out struct {
		BodyAsHTML string `json:"body_as_html"`
	}
	if err := c.do(ctx, http.MethodPost, c.resolve("/joplin_live/rest/convert_markdown2html_note", nil), body, &out); err != nil {
		return "", err
	}
	return out.BodyAsHTML, nil
}

func isAll(username string) bool {
	return username == "" || strings.EqualFold(username, "all")
}

func setUsername(q url.Values, username string) {
	if !isAll(username) {
		q.Set("username", username)
	}
}
