package omdb

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

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	defaultBaseURL = "https://www.omdbapi.com/"
	userAgent      = "marquee/1.0"
)

// ClientConfig contains what is needed to build a Client
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables pacing
	Burst             int
	HTTPClient        *http.Client // optional; overrides Timeout
}

// Client implements domain.SearchClient and domain.DetailsClient for OMDb.
// It never caches and never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var (
	_ domain.SearchClient  = (*Client)(nil)
	_ domain.DetailsClient = (*Client)(nil)
)

// NewClient creates a new OMDb API client. A missing API key is a hard error.
func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// NewClientFromConfig creates a Client from the application config
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return NewClient(ClientConfig{
		APIKey:            cfg.API.Key,
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, logger)
}

// param is an ordered query parameter; the provider contract fixes the order
type param struct {
	key, value string
}

// Search runs a keyword search for one 1-based page. Provider failures (including
// quota exhaustion) come back in SearchPage.ErrorMessage; transport and decode
// failures come back as errors. A cancelled ctx returns ctx.Err().
func (c *Client) Search(ctx context.Context, filters domain.SearchFilters, page int) (domain.SearchPage, error) {
	if page < domain.FirstPage {
		page = domain.FirstPage
	}

	params := []param{
		{"s", filters.TrimmedQuery()},
		{"page", strconv.Itoa(page)},
	}
	if filters.Type != domain.MediaTypeAny {
		params = append(params, param{"type", string(filters.Type)})
	}
	if year := filters.NormalizedYear(); year != "" {
		params = append(params, param{"y", year})
	}

	status, body, err := c.doRequest(ctx, params)
	if err != nil {
		return domain.SearchPage{}, err
	}

	if isAuthStatus(status) {
		c.logger.Warn("omdb rejected key", "status", status)
		return domain.SearchPage{ErrorMessage: domain.MsgRateLimited}, nil
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "status", status, "bodyLen", len(body))
		return domain.SearchPage{}, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if resp.Response != responseTrue {
		return domain.SearchPage{ErrorMessage: searchErrorMessage(resp.Error)}, nil
	}

	total := parseTotalResults(resp.TotalResults)
	result := domain.SearchPage{
		Items:        MapSearchItems(resp.Search),
		TotalResults: total,
		TotalPages:   domain.TotalPagesFor(total),
	}
	c.logger.Debug("omdb search", "query", filters.TrimmedQuery(), "page", page, "items", len(result.Items), "total", total)
	return result, nil
}

// Details fetches the full record for id. It returns (nil, nil) when the record does
// not exist and domain.ErrRateLimited on quota or auth failure.
func (c *Client) Details(ctx context.Context, id string) (*domain.MovieDetails, error) {
	params := []param{
		{"i", id},
		{"plot", "full"},
	}

	status, body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	if isAuthStatus(status) {
		return nil, domain.ErrRateLimited
	}

	var resp DetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "status", status, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if resp.Response == responseFalse {
		if isLimitMessage(resp.Error) {
			return nil, domain.ErrRateLimited
		}
		c.logger.Debug("omdb details not found", "id", id, "error", resp.Error)
		return nil, nil
	}

	return MapDetails(resp), nil
}

// doRequest performs a GET against the base URL and returns status and body.
// Non-2xx statuses are not errors here; callers interpret them.
func (c *Client) doRequest(ctx context.Context, params []param) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, nil, ctxErr
			}
			return 0, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL := c.baseURL + "?" + encodeParams(append([]param{{"apikey", c.apiKey}}, params...))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "params", encodeParams(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		c.logger.Error("omdb request failed", "error", err)
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("omdb request error", "status", resp.StatusCode)
		return 0, nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrServerOffline, resp.StatusCode)
	}

	return resp.StatusCode, body, nil
}

func encodeParams(params []param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func isAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func searchErrorMessage(providerMsg string) string {
	switch {
	case providerMsg == "":
		return domain.MsgNoResults
	case isLimitMessage(providerMsg):
		return domain.MsgRateLimited
	default:
		return providerMsg
	}
}

