package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// ProviderReddit is linked to an existing account instead of signing in.
const ProviderReddit = "reddit"

type socialRequest struct {
	Provider    string `json:"provider"`
	CallbackURL string `json:"callbackURL"`
}

type socialResponse struct {
	URL      string `json:"url"`
	Redirect bool   `json:"redirect"`
}

// startSocial asks the auth service for the provider authorization URL.
// Reddit is linked to the signed-in account; every other provider signs in.
func (b *Broker) startSocial(ctx context.Context, provider, callbackURL string) (string, []*http.Cookie, error) {
	path := "/sign-in/social"
	if provider == ProviderReddit {
		path = "/link-social"
	}

	body, err := json.Marshal(socialRequest{Provider: provider, CallbackURL: callbackURL})
	if err != nil {
		return "", nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(b.cfg.BaseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if cookie, ok := ctxutil.SessionFromCtx(ctx); ok {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{Message: domain.MsgFetchFailed, Status: resp.StatusCode}
		var e struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(raw, &e) == nil {
			if e.Message != "" {
				apiErr.Message = e.Message
			}
			apiErr.Code = e.Code
		}
		return "", nil, apiErr
	}

	var out socialResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", nil, fmt.Errorf("decode response: %w", err)
	}
	if out.URL == "" {
		return "", nil, fmt.Errorf("auth service returned no url")
	}
	return out.URL, resp.Cookies(), nil
}
