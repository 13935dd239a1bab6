package api

import (
	"bytes"
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

	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// Client talks to the remote tries/users API. The caller's session cookie
// is taken from the context and forwarded on every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the configured base URL.
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "api"),
	}
}

// GetMe returns the signed-in user.
func (c *Client) GetMe(ctx context.Context) (domain.User, error) {
	var u apiUser
	if err := c.do(ctx, http.MethodGet, "/users/me", "/users/me", nil, &u); err != nil {
		return domain.User{}, err
	}
	return u.toDomain(), nil
}

// CompleteOnboarding submits the onboarding answers.
func (c *Client) CompleteOnboarding(ctx context.Context, answers domain.OnboardingAnswers) error {
	body := onboardRequest{
		AgeGroup:     answers.AgeGroup,
		Gender:       answers.Gender,
		HasDoneState: answers.HasDoneState,
		Reason:       answers.Reason,
	}
	return c.do(ctx, http.MethodPost, "/users/onboard", "/users/onboard", body, nil)
}

// GetLinkedReddit returns the linked reddit account, or nil when none is linked.
func (c *Client) GetLinkedReddit(ctx context.Context) (*domain.RedditAccount, error) {
	var acc *apiRedditAccount
	if err := c.do(ctx, http.MethodGet, "/users/me/reddit", "/users/me/reddit", nil, &acc); err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, nil
	}
	return &domain.RedditAccount{
		Name:         acc.Name,
		ID:           acc.ID,
		IconImg:      acc.IconImg,
		CreatedUTC:   acc.CreatedUTC,
		LinkKarma:    acc.LinkKarma,
		CommentKarma: acc.CommentKarma,
	}, nil
}

// GetCurrentTry returns this year's try with all of its entries.
func (c *Client) GetCurrentTry(ctx context.Context) (domain.TryWithEntries, error) {
	var t apiTryWithEntries
	if err := c.do(ctx, http.MethodGet, "/tries/me/current", "/tries/me/current", nil, &t); err != nil {
		return domain.TryWithEntries{}, err
	}
	return t.toDomain()
}

// Log records today's status and returns the new entry id.
func (c *Client) Log(ctx context.Context, status domain.Status) (string, error) {
	var resp logResponse
	if err := c.do(ctx, http.MethodPost, "/tries/me/log", "/tries/me/log", logRequest{Status: status}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// LogPrevious records a status for a past day. date is a UTC ISO-8601 instant.
func (c *Client) LogPrevious(ctx context.Context, date string, status domain.Status) (string, error) {
	var resp logResponse
	body := logRequest{Date: date, Status: status}
	if err := c.do(ctx, http.MethodPost, "/tries/me/log", "/tries/me/log", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// FailEntry converts an entry to failed.
func (c *Client) FailEntry(ctx context.Context, entryID string) error {
	path := "/tries/me/" + url.PathEscape(entryID) + "/fail"
	return c.do(ctx, http.MethodPost, path, "/tries/me/{id}/fail", nil, nil)
}

// do sends one request. endpoint is the path template used as the metrics
// label. A nil out skips decoding the success body.
func (c *Client) do(ctx context.Context, method, path, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if cookie, ok := ctxutil.SessionFromCtx(ctx); ok {
		req.Header.Set("Cookie", cookie)
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	c.log.DebugContext(ctx, "api request", slog.String("method", method), slog.String("endpoint", endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.ErrorContext(ctx, "api request failed", slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.WarnContext(ctx, "api error response",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s: %w", endpoint, err)
	}
	return nil
}

// decodeError builds an APIError from a non-2xx response. An unreadable or
// empty body yields the generic message and an empty code.
func decodeError(resp *http.Response) *domain.APIError {
	apiErr := &domain.APIError{Message: domain.MsgFetchFailed, Status: resp.StatusCode}

	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
		return apiErr
	}
	if eb.Message != "" {
		apiErr.Message = eb.Message
	}
	apiErr.Code = eb.Code
	return apiErr
}
