package openlibrary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"booksearch/internal/config"
	"booksearch/internal/logger"
	"booksearch/internal/metrics"
)

// MaxLimit is the number of documents requested and rendered.
const MaxLimit = 24

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// ErrMalformed is returned when the body is not the expected JSON.
var ErrMalformed = errors.New("malformed search response")

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return "HTTP " + strconv.Itoa(e.Code) }

// Client talks to the Open Library search endpoint.
type Client struct {
	cfg    config.OpenLibraryConfig
	client *http.Client
}

func New(cfg config.OpenLibraryConfig) *Client {
	return &Client{cfg: cfg, client: newHTTPClient(cfg)}
}

// NewWithHTTPClient is used when the caller owns the transport.
func NewWithHTTPClient(cfg config.OpenLibraryConfig, hc *http.Client) *Client {
	return &Client{cfg: cfg, client: hc}
}

func newHTTPClient(cfg config.OpenLibraryConfig) *http.Client {
	t := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		MaxIdleConns:       100,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
		ForceAttemptHTTP2:  true,
	}
	return &http.Client{Transport: t, Timeout: cfg.Timeout}
}

func (c *Client) limit() int {
	if c.cfg.Limit <= 0 || c.cfg.Limit > MaxLimit {
		return MaxLimit
	}
	return c.cfg.Limit
}

// SearchURL builds GET <base>/search.json?q=<query>&limit=<n>.
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("limit", strconv.Itoa(c.limit()))
	return c.cfg.SearchURL + "/search.json?" + v.Encode()
}

// Search runs one query. Errors wrap *StatusError, ErrMalformed or the
// transport error.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	log := logger.For(ctx)
	endpoint := c.SearchURL(query)

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithField("url", endpoint).Debug("openlibrary.request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.client.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("upstream do: %w", err)
	}
	defer res.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(strconv.Itoa(res.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"bytes":  len(data),
		}).Debug("openlibrary.response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{Code: res.StatusCode}
	}
	return Decode(data)
}

// Decode parses and validates a search payload. A JSON null counts as an
// empty result.
func Decode(data []byte) (*SearchResponse, error) {
	if string(bytes.TrimSpace(data)) == "null" {
		return &SearchResponse{}, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	var out SearchResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &out, nil
}

// CoverURL is the medium-size cover image for id.
func CoverURL(base string, id int64) string {
	return fmt.Sprintf("%s/b/id/%d-M.jpg", base, id)
}
