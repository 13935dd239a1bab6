// Package confirm issues short-lived tokens that gate destructive actions
// behind an un-skippable countdown. A token is only accepted after its
// not-before time, so a client has to wait before spending it.
package confirm

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nonutti-ng/web/internal/domain"
)

// Action names the operation a token confirms.
type Action string

const (
	ActionOutToday Action = "out_today"
	ActionFailDay  Action = "fail_day"
)

func (a Action) IsValid() bool {
	return a == ActionOutToday || a == ActionFailDay
}

const audience = "confirm"

// Error codes returned by Verify.
const (
	CodeTooEarly = "confirm_too_early"
	CodeExpired  = "confirm_expired"
	CodeInvalid  = "confirm_invalid"
)

// Token is an issued confirmation.
type Token struct {
	Value     string    `json:"token"`
	ReadyAt   time.Time `json:"readyAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type claims struct {
	jwt.RegisteredClaims
	Action Action `json:"act"`
	Day    int    `json:"day,omitempty"`
}

// Manager signs and checks confirmation tokens.
type Manager struct {
	secret []byte
	issuer string
	delay  time.Duration
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. Tokens become usable delay after issue and
// expire ttl after issue. A nil clock means time.Now.
func NewManager(secret, issuer string, delay, ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		delay:  delay,
		ttl:    ttl,
		now:    now,
	}
}

// Issue creates a token for action on behalf of subject. Day is the grid
// day the action targets, 0 for today.
func (m *Manager) Issue(action Action, subject string, day int) (Token, error) {
	if !action.IsValid() {
		return Token{}, domain.NewValidationError("action", "unknown action")
	}

	// Claims carry whole seconds. Round nbf up and exp down so the token is
	// never usable before the full delay or after the full ttl.
	now := m.now()
	ready := ceilSecond(now.Add(m.delay))
	expires := now.Add(m.ttl).Truncate(time.Second)

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
			NotBefore: jwt.NewNumericDate(ready),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Action: action,
		Day:    day,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign confirm token: %w", err)
	}

	return Token{Value: signed, ReadyAt: ready, ExpiresAt: expires}, nil
}

// Verify checks that token confirms action on day for subject and that its
// countdown has elapsed.
func (m *Manager) Verify(token string, action Action, subject string, day int) error {
	if token == "" {
		return invalid("Confirmation required.")
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(audience),
		jwt.WithSubject(subject),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return &domain.APIError{
			Message: "Please wait for the countdown to finish.",
			Code:    CodeTooEarly,
			Status:  http.StatusTooEarly,
		}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &domain.APIError{
			Message: "This confirmation has expired. Please try again.",
			Code:    CodeExpired,
			Status:  http.StatusBadRequest,
		}
	case err != nil:
		return invalid("Invalid confirmation.")
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return invalid("Invalid confirmation.")
	}
	if c.Action != action || c.Day != day {
		return invalid("This confirmation is for a different action.")
	}
	return nil
}

func invalid(msg string) error {
	return &domain.APIError{Message: msg, Code: CodeInvalid, Status: http.StatusBadRequest}
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); r.Before(t) {
		return r.Add(time.Second)
	}
	return t
}
