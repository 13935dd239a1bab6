package rest

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nonutti-ng/web/internal/auth"
)

type popupBroker interface {
	Begin(ctx context.Context, provider string) (auth.Start, error)
	Complete(ctx context.Context, state, errParam string) (auth.Result, error)
	Await(ctx context.Context, state string) (auth.Result, error)
}

// resultPending is returned by the long-poll when the window elapses
// before the popup reports back. The client polls again.
const resultPending = "auth_pending"

// AuthHandler runs the popup sign-in and reddit link flows.
type AuthHandler struct {
	broker     popupBroker
	pollWindow time.Duration
	log        *slog.Logger
}

// NewAuthHandler creates an AuthHandler. pollWindow bounds one long-poll
// and must stay below the server write timeout.
func NewAuthHandler(broker popupBroker, pollWindow time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{broker: broker, pollWindow: pollWindow, log: logger.With("handler", "auth")}
}

type redirectResponse struct {
	URL      string `json:"url"`
	State    string `json:"state"`
	Provider string `json:"provider"`
}

var callbackPage = template.Must(template.New("callback").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<p>{{.Message}}</p>
<script>window.close();</script>
</body></html>
`))

type callbackView struct {
	Title   string
	Message string
}

// Redirect handles GET /auth/redirect?provider=. Browsers get a 302 to the
// provider; callers asking for JSON get the URL and the state to poll with.
func (h *AuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	start, err := h.broker.Begin(r.Context(), r.URL.Query().Get("provider"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	for _, c := range start.Cookies {
		http.SetCookie(w, c)
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, redirectResponse{URL: start.URL, State: start.State, Provider: start.Provider})
		return
	}
	http.Redirect(w, r, start.URL, http.StatusFound)
}

// Callback handles GET /auth/callback?state=&error=. It is the page the
// popup lands on; it reports the outcome to the waiting opener and closes.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.broker.Complete(r.Context(), q.Get("state"), q.Get("error"))

	view := callbackView{Title: "Signed in", Message: "You can close this window."}
	status := http.StatusOK
	switch {
	case err != nil:
		h.log.WarnContext(r.Context(), "popup callback rejected", slog.String("error", err.Error()))
		view = callbackView{Title: "Sign-in failed", Message: "This sign-in link is invalid or has expired."}
		status = http.StatusBadRequest
	case res.Type == auth.ResultError:
		view = callbackView{Title: "Sign-in failed", Message: "Sign-in was not completed: " + res.Error}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := callbackPage.Execute(w, view); err != nil {
		h.log.ErrorContext(r.Context(), "render callback page", slog.String("error", err.Error()))
	}
}

// Popup handles GET /auth/popup?state=, a long-poll for the flow result.
func (h *AuthHandler) Popup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.pollWindow)
	defer cancel()

	res, err := h.broker.Await(ctx, r.URL.Query().Get("state"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, context.DeadlineExceeded) && r.Context().Err() == nil:
		writeJSON(w, http.StatusOK, auth.Result{Type: resultPending})
	default:
		handleError(h.log, w, r, err)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
