// Package account backs the settings page account section.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nonutti-ng/web/internal/domain"
)

type apiClient interface {
	GetMe(ctx context.Context) (domain.User, error)
	GetLinkedReddit(ctx context.Context) (*domain.RedditAccount, error)
}

// Service reads account details from the remote API.
type Service struct {
	log *slog.Logger
	api apiClient
}

// NewService creates an account service.
func NewService(logger *slog.Logger, api apiClient) *Service {
	return &Service{
		log: logger.With("service", "account"),
		api: api,
	}
}

// Overview is the signed-in user with the linked reddit account, if any.
type Overview struct {
	User   domain.User
	Reddit *domain.RedditAccount
}

// Overview fetches the user and the linked reddit account.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	user, err := s.api.GetMe(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("account.Overview: %w", domain.AsAPIError(err))
	}

	reddit, err := s.api.GetLinkedReddit(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("account.Overview: %w", domain.AsAPIError(err))
	}

	s.log.DebugContext(ctx, "account loaded", slog.String("user_id", user.ID), slog.Bool("reddit_linked", reddit != nil))
	return Overview{User: user, Reddit: reddit}, nil
}
