package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateAudience = "popup"

type stateClaims struct {
	jwt.RegisteredClaims
	Provider string `json:"prv"`
}

// signState creates the opaque state carried through the provider round
// trip. The JWT ID is the broker key. Expiry is rounded up to whole seconds
// so the state never expires before its flow.
func (b *Broker) signState(nonce, provider string, now time.Time) (string, error) {
	exp := now.Add(b.cfg.PopupTTL).Truncate(time.Second).Add(time.Second)
	c := stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Issuer:    b.cfg.Issuer,
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Provider: provider,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(b.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// parseState verifies a state issued by this broker and returns its nonce.
func (b *Broker) parseState(state string) (string, error) {
	if state == "" {
		return "", fmt.Errorf("state is empty")
	}

	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return b.secret, nil
	},
		jwt.WithTimeFunc(b.now),
		jwt.WithIssuer(b.cfg.Issuer),
		jwt.WithAudience(stateAudience),
	)
	if err != nil {
		return "", fmt.Errorf("parse state: %w", err)
	}

	c, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid || c.ID == "" {
		return "", fmt.Errorf("invalid state claims")
	}
	return c.ID, nil
}
