package secop

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/licitia/radar/core"
)

// DefaultBaseURL is the Colombian open-data Socrata endpoint.
const DefaultBaseURL = "https://www.datos.gov.co/resource"

const (
	defaultPageSize = 1000
	defaultMaxPages = 10
	maxRetries      = 3
)

// Query narrows a tender fetch. Zero-value fields are not applied.
type Query struct {
	// Since keeps only tenders published at or after this time.
	Since time.Time

	// UNSPSCCode filters by procurement category code, e.g. "81101500".
	UNSPSCCode string

	// Department filters by the contracting entity's department.
	Department string

	// Keyword keeps only tenders whose object text contains the term.
	// Applied client-side after fetching.
	Keyword string

	// MinAmount and MaxAmount bound the tender amount. Applied client-side.
	MinAmount *float64
	MaxAmount *float64
}

// Client fetches tenders from a SECOP Socrata dataset.
type Client struct {
	baseURL    string
	datasetID  string
	appToken   string
	pageSize   int
	maxPages   int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL overrides the Socrata endpoint. Default is DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
		return nil
	}
}

// WithAppToken sets the Socrata application token, which lifts throttling
// limits and enables server-side $where filtering on restricted datasets.
func WithAppToken(token string) Option {
	return func(c *Client) error {
		c.appToken = token
		return nil
	}
}

// WithPageSize sets the $limit used per request.
func WithPageSize(size int) Option {
	return func(c *Client) error {
		if size > 0 {
			c.pageSize = size
		}
		return nil
	}
}

// WithMaxPages bounds how many pages a single fetch walks.
func WithMaxPages(pages int) Option {
	return func(c *Client) error {
		if pages > 0 {
			c.maxPages = pages
		}
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a SECOP client for the given dataset.
func NewClient(datasetID string, opts ...Option) (*Client, error) {
	if datasetID == "" {
		return nil, ErrDatasetRequired
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		datasetID:  datasetID,
		pageSize:   defaultPageSize,
		maxPages:   defaultMaxPages,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.logger = c.logger.With("component", "secop-client")
	return c, nil
}

// FetchTenders retrieves tenders matching the query, newest first.
func (c *Client) FetchTenders(ctx context.Context, query Query) ([]*core.Tender, error) {
	tenders := make([]*core.Tender, 0, c.pageSize)

	for page := 0; page < c.maxPages; page++ {
		rows, err := c.fetchPage(ctx, query, page*c.pageSize)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			tender := c.mapRow(row)
			if tender == nil {
				continue
			}
			if !c.keepTender(tender, query) {
				continue
			}
			tenders = append(tenders, tender)
		}

		if len(rows) < c.pageSize {
			break
		}
	}

	c.logger.Info("fetched tenders from SECOP", "count", len(tenders))
	return tenders, nil
}

// fetchPage issues one paginated Socrata request with retries.
func (c *Client) fetchPage(ctx context.Context, query Query, offset int) ([]secopRow, error) {
	params := url.Values{}
	params.Set("$limit", strconv.Itoa(c.pageSize))
	params.Set("$offset", strconv.Itoa(offset))
	params.Set("$order", "fecha_de_publicacion_del DESC")

	var where []string
	if !query.Since.IsZero() {
		where = append(where, fmt.Sprintf("fecha_de_publicacion_del >= '%s'", query.Since.Format("2006-01-02")))
	}
	if query.UNSPSCCode != "" {
		where = append(where, fmt.Sprintf("codigo_principal_de_categoria LIKE '%%%s%%'", query.UNSPSCCode))
	}
	if query.Department != "" {
		where = append(where, fmt.Sprintf("departamento_entidad LIKE '%%%s%%'", query.Department))
	}
	if len(where) > 0 {
		params.Set("$where", strings.Join(where, " AND "))
	}

	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, c.datasetID, params.Encode())

	var lastErr error
	backoff := time.Second
	for attempt := 1; attempt <= maxRetries; attempt++ {
		rows, retryable, err := c.doRequest(ctx, endpoint)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		if !retryable {
			break
		}

		c.logger.Warn("secop request failed, retrying",
			"attempt", attempt, "backoff", backoff, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string) (rows []secopRow, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode != http.StatusOK {
		// Server errors and throttling are worth retrying, 4xx are not.
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body))
	}

	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, false, fmt.Errorf("decoding response: %w", err)
	}
	return rows, false, nil
}

// keepTender applies the client-side filters Socrata cannot evaluate.
func (c *Client) keepTender(tender *core.Tender, query Query) bool {
	if query.Keyword != "" &&
		!strings.Contains(strings.ToLower(tender.ObjectText), strings.ToLower(query.Keyword)) {
		return false
	}
	if query.MinAmount != nil && (tender.Amount == nil || *tender.Amount < *query.MinAmount) {
		return false
	}
	if query.MaxAmount != nil && (tender.Amount == nil || *tender.Amount > *query.MaxAmount) {
		return false
	}
	return true
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
