package repositories

import (
	"context"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// ProjectRepositoryFacade defines CRUD operations for projects.
type ProjectRepositoryFacade interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) error
	ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error)
}

// CustomerRepositoryFacade defines CRUD operations for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	ListCustomersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.Customer, error)
}
