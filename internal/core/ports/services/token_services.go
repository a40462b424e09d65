package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// TokenSvcFacade owns the reservation token lifecycle and its posting
// workflow.
type TokenSvcFacade interface {
	CreateToken(ctx context.Context, req dto.CreateTokenRequest, creatorUserID string) (*domain.Token, error)
	UpdateToken(ctx context.Context, tokenID string, req dto.UpdateTokenRequest, userID string) (*domain.Token, error)
	RefundToken(ctx context.Context, tokenID string, req dto.RefundTokenRequest, userID string) (*domain.Token, error)
	GetTokenByID(ctx context.Context, tokenID string) (*domain.Token, error)
	ListTokens(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Token, *string, error)
}
