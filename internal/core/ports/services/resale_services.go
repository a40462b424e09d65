package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// ResaleSvcFacade owns plot resales: booking closure, plot release and the
// fixed closing posting sequence.
type ResaleSvcFacade interface {
	CreateResale(ctx context.Context, req dto.CreateResaleRequest, creatorUserID string) (*domain.PlotResale, error)
	UpdateResale(ctx context.Context, resaleID string, req dto.UpdateResaleRequest, userID string) (*domain.PlotResale, error)
	DeleteResale(ctx context.Context, resaleID string, userID string) error
	GetResaleByID(ctx context.Context, resaleID string) (*domain.PlotResale, error)
	ListResales(ctx context.Context, projectID string, limit, offset int) ([]domain.PlotResale, error)
}
