package services

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
)

// ProjectSvcFacade provides project CRUD.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error)
}

// CustomerSvcFacade provides customer CRUD.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, projectID string, limit, offset int) ([]domain.Customer, error)
}

// PlotSvcFacade provides plot CRUD.
type PlotSvcFacade interface {
	CreatePlot(ctx context.Context, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error)
	UpdatePlot(ctx context.Context, plotID string, req dto.UpdatePlotRequest, userID string) (*domain.Plot, error)
	ListPlots(ctx context.Context, projectID string, status domain.PlotStatus) ([]domain.Plot, error)
}
