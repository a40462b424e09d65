package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

type projectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID: uuid.NewString(),
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		logger.Error("Project creation failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Project created", slog.String("project_id", project.ProjectID), slog.String("code", project.Code))
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Address != nil {
		project.Address = *req.Address
	}
	project.LastUpdatedAt = time.Now().UTC()
	project.LastUpdatedBy = userID
	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.projectRepo.ListProjects(ctx, limit, offset)
}

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	projectRepo  portsrepo.ProjectRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo, projectRepo: projectRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		ProjectID:  req.ProjectID,
		Name:       req.Name,
		FatherName: req.FatherName,
		CNIC:       req.CNIC,
		Phone:      req.Phone,
		Address:    req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Customer creation failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.FatherName != nil {
		customer.FatherName = *req.FatherName
	}
	if req.CNIC != nil {
		customer.CNIC = *req.CNIC
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID
	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, projectID string, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.customerRepo.ListCustomersByProject(ctx, projectID, limit, offset)
}

type plotService struct {
	plotRepo    portsrepo.PlotRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewPlotService creates a new PlotService.
func NewPlotService(plotRepo portsrepo.PlotRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade) portssvc.PlotSvcFacade {
	return &plotService{plotRepo: plotRepo, projectRepo: projectRepo}
}

var _ portssvc.PlotSvcFacade = (*plotService)(nil)

func (s *plotService) CreatePlot(ctx context.Context, req dto.CreatePlotRequest, creatorUserID string) (*domain.Plot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plot := domain.Plot{
		PlotID:    uuid.NewString(),
		ProjectID: req.ProjectID,
		Number:    req.Number,
		Sector:    req.Sector,
		AreaSqft:  req.AreaSqft,
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		Status:    domain.PlotActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.plotRepo.SavePlot(ctx, plot); err != nil {
		logger.Error("Plot creation failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Plot created", slog.String("plot_id", plot.PlotID), slog.String("number", plot.Number))
	return &plot, nil
}

func (s *plotService) UpdatePlot(ctx context.Context, plotID string, req dto.UpdatePlotRequest, userID string) (*domain.Plot, error) {
	plots, err := s.plotRepo.FindPlotsByIDs(ctx, []string{plotID})
	if err != nil {
		return nil, err
	}
	if len(plots) == 0 {
		return nil, fmt.Errorf("%w: plot %s", apperrors.ErrNotFound, plotID)
	}
	plot := plots[0]
	if req.Number != nil {
		plot.Number = *req.Number
	}
	if req.Sector != nil {
		plot.Sector = *req.Sector
	}
	if req.AreaSqft != nil {
		plot.AreaSqft = *req.AreaSqft
	}
	if req.CostPrice != nil {
		plot.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		plot.SalePrice = *req.SalePrice
	}
	plot.LastUpdatedAt = time.Now().UTC()
	plot.LastUpdatedBy = userID
	if err := s.plotRepo.UpdatePlot(ctx, plot); err != nil {
		return nil, err
	}
	return &plot, nil
}

func (s *plotService) ListPlots(ctx context.Context, projectID string, status domain.PlotStatus) ([]domain.Plot, error) {
	return s.plotRepo.ListPlotsByProject(ctx, projectID, status)
}
