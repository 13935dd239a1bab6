// Package auth runs the popup sign-in handshake. The opener starts a flow
// with Begin, the popup lands on the callback which calls Complete, and the
// opener picks the outcome up once through Await.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/domain"
)

// Result types delivered to the opener.
const (
	ResultSuccess   = "auth_success"
	ResultError     = "auth_error"
	ResultCancelled = "auth_cancelled"
)

// Result is the outcome of a popup flow.
type Result struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// Start is what the opener needs to open the popup.
type Start struct {
	URL      string
	State    string
	Provider string
	// Cookies set by the auth service for its own OAuth state; they must
	// reach the browser together with the redirect.
	Cookies []*http.Cookie
}

type flow struct {
	ch        chan Result
	expires   time.Time
	completed bool
}

// Broker tracks pending popup flows in memory.
type Broker struct {
	log    *slog.Logger
	cfg    config.AuthConfig
	secret []byte
	client *http.Client
	now    func() time.Time

	mu    sync.Mutex
	flows map[string]*flow
}

// NewBroker creates a Broker. A nil client means http.DefaultClient and a
// nil clock means time.Now.
func NewBroker(logger *slog.Logger, cfg config.AuthConfig, client *http.Client, now func() time.Time) *Broker {
	if client == nil {
		client = http.DefaultClient
	}
	if now == nil {
		now = time.Now
	}
	return &Broker{
		log:    logger.With("component", "auth_broker"),
		cfg:    cfg,
		secret: []byte(cfg.Secret),
		client: client,
		now:    now,
		flows:  make(map[string]*flow),
	}
}

// Begin starts a flow for provider. An empty provider means the configured
// default.
func (b *Broker) Begin(ctx context.Context, provider string) (Start, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = b.cfg.DefaultProvider
	}
	if !b.cfg.IsProviderAllowed(provider) {
		return Start{}, domain.NewValidationError("provider", "unsupported provider")
	}

	now := b.now()
	nonce := uuid.NewString()

	state, err := b.signState(nonce, provider, now)
	if err != nil {
		return Start{}, fmt.Errorf("auth.Begin: %w", err)
	}

	callback := strings.TrimRight(b.cfg.FrontendURL, "/") + "/auth/callback?state=" + url.QueryEscape(state)
	target, cookies, err := b.startSocial(ctx, provider, callback)
	if err != nil {
		return Start{}, fmt.Errorf("auth.Begin: %w", err)
	}

	b.mu.Lock()
	b.sweepLocked(now)
	b.flows[nonce] = &flow{ch: make(chan Result, 1), expires: now.Add(b.cfg.PopupTTL)}
	b.mu.Unlock()

	b.log.InfoContext(ctx, "popup flow started", slog.String("provider", provider))
	return Start{URL: target, State: state, Provider: provider, Cookies: cookies}, nil
}

// Complete publishes the provider outcome for state. A non-empty errParam
// is an auth_error. Each flow completes at most once.
func (b *Broker) Complete(ctx context.Context, state, errParam string) (Result, error) {
	nonce, err := b.parseState(state)
	if err != nil {
		return Result{}, domain.NewValidationError("state", "invalid or expired")
	}

	res := Result{Type: ResultSuccess}
	if errParam != "" {
		res = Result{Type: ResultError, Error: errParam}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, ok := b.flows[nonce]
	if !ok || f.completed {
		return Result{}, fmt.Errorf("auth flow: %w", domain.ErrNotFound)
	}
	f.completed = true
	f.ch <- res

	b.log.InfoContext(ctx, "popup flow completed", slog.String("result", res.Type))
	return res, nil
}

// Await blocks until the flow for state completes, ctx is done or the flow
// expires. Expiry yields an auth_cancelled result. A flow can be awaited
// successfully once.
func (b *Broker) Await(ctx context.Context, state string) (Result, error) {
	nonce, err := b.parseState(state)
	if err != nil {
		return Result{}, domain.NewValidationError("state", "invalid or expired")
	}

	b.mu.Lock()
	f, ok := b.flows[nonce]
	b.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("auth flow: %w", domain.ErrNotFound)
	}

	timer := time.NewTimer(max(f.expires.Sub(b.now()), 0))
	defer timer.Stop()

	select {
	case res := <-f.ch:
		b.remove(nonce)
		return res, nil
	case <-timer.C:
		b.remove(nonce)
		return Result{Type: ResultCancelled}, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Pending returns the number of open flows.
func (b *Broker) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.flows)
}

func (b *Broker) remove(nonce string) {
	b.mu.Lock()
	delete(b.flows, nonce)
	b.mu.Unlock()
}

func (b *Broker) sweepLocked(now time.Time) {
	for k, f := range b.flows {
		if now.After(f.expires) {
			delete(b.flows, k)
		}
	}
}
