package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.fiba.basketball"
	DefaultDelay   = time.Second
	Timeout        = 30 * time.Second

	// The site serves its tab fragments to mobile browsers.
	UserAgent    = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36"
	AcceptHeader = "text/html, */*; q=0.01"
)

// ErrInvalidArgument is returned when a required argument such as a link or
// team label is missing, before any request is made.
var ErrInvalidArgument = errors.New("invalid argument")

// HTTPStatusError is returned for any non-200 response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// ClientOptions configures a Client. Zero values select the defaults,
// except Delay where zero means no delay.
type ClientOptions struct {
	BaseURL   string
	Delay     time.Duration
	Timeout   time.Duration
	CookieJar bool

	// HTTPClient replaces the default client (tests).
	HTTPClient *http.Client
}

// Client fetches FIBA pages and tab fragments.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a Client from opts.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("invalid base url %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = Timeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	if opts.CookieJar && hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrap(err, "creating cookie jar")
		}
		hc.Jar = jar
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	return &Client{
		http:    hc,
		baseURL: base,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Resolve turns a link from the site into an absolute URL. Links that
// already contain the base origin, or carry their own scheme and host, are
// returned unchanged; anything else is prefixed with the base.
func (c *Client) Resolve(link string) string {
	link = strings.TrimSpace(link)
	if strings.Contains(link, c.baseURL) {
		return link
	}
	if u, err := url.Parse(link); err == nil && u.IsAbs() && u.Host != "" {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return c.baseURL + link
}

// FetchPage fetches a full page such as a game or roster page.
func (c *Client) FetchPage(ctx context.Context, link string) ([]byte, error) {
	if err := requireLink(link); err != nil {
		return nil, err
	}
	return c.get(ctx, c.Resolve(link), false)
}

// FetchFragment fetches an AJAX tab fragment. Fragment requests are spaced
// by the configured delay and marked as XMLHttpRequest.
func (c *Client) FetchFragment(ctx context.Context, link string) ([]byte, error) {
	if err := requireLink(link); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "waiting for request slot")
	}
	return c.get(ctx, c.Resolve(link), true)
}

// Download streams the body at link into w.
func (c *Client) Download(ctx context.Context, link string, w io.Writer) error {
	if err := requireLink(link); err != nil {
		return err
	}
	if w == nil {
		return errors.Wrap(ErrInvalidArgument, "writer must be provided")
	}
	resp, err := c.do(ctx, c.Resolve(link), false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Wrapf(err, "reading %s", link)
	}
	return nil
}

// requireLink rejects blank links, which Resolve would otherwise turn into
// the site's home page.
func requireLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return errors.Wrap(ErrInvalidArgument, "url must be provided")
	}
	return nil
}

func (c *Client) get(ctx context.Context, target string, fragment bool) ([]byte, error) {
	resp, err := c.do(ctx, target, fragment)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", target)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, target string, fragment bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Connection", "keep-alive")
	if fragment {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logger.RecordTiming("http.fetch", time.Since(start))
	logger.IncrCounter("http.requests")
	if err != nil {
		logger.IncrCounter("http.errors")
		return nil, errors.Wrapf(err, "fetching %s", target)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		logger.IncrCounter("http.errors")
		return nil, &HTTPStatusError{URL: target, StatusCode: resp.StatusCode}
	}

	logger.Debug("fetched", logger.Fields{
		"url":      target,
		"fragment": fragment,
	})
	return resp, nil
}

// parseHTML builds a document from a response body. An empty body gives an
// empty document, so lookups fall back to their defaults.
func parseHTML(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	return doc, nil
}
