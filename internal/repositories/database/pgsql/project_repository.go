package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
	portsrepo "github.com/EstateBooks/plot_booking_app/internal/core/ports/repositories"
	"github.com/EstateBooks/plot_booking_app/internal/models"
)

type PgxProjectRepository struct {
	pool *pgxpool.Pool
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{pool: pool}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID: m.ProjectID,
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (project_id, code, name, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		project.ProjectID,
		project.Code,
		project.Name,
		project.Address,
		project.IsActive,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project code %s already exists", apperrors.ErrDuplicate, project.Code)
		}
		return fmt.Errorf("failed to save project %s: %w", project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, code, name, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		WHERE project_id = $1;
	`
	var m models.Project
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&m.ProjectID, &m.Code, &m.Name, &m.Address, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	project := toDomainProject(m)
	return &project, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, address = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE project_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		project.ProjectID, project.Name, project.Address, project.IsActive,
		project.LastUpdatedAt, project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, limit int, offset int) ([]domain.Project, error) {
	query := `
		SELECT project_id, code, name, address, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM projects
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var m models.Project
		if err := rows.Scan(
			&m.ProjectID, &m.Code, &m.Name, &m.Address, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	return projects, rows.Err()
}

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		ProjectID:  m.ProjectID,
		Name:       m.Name,
		FatherName: m.FatherName,
		CNIC:       m.CNIC,
		Phone:      m.Phone,
		Address:    m.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, project_id, name, father_name, cnic, phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID, customer.ProjectID, customer.Name, customer.FatherName,
		customer.CNIC, customer.Phone, customer.Address,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer %s already exists", apperrors.ErrDuplicate, customer.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, project_id, name, father_name, cnic, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	var m models.Customer
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID, &m.ProjectID, &m.Name, &m.FatherName, &m.CNIC, &m.Phone, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	customer := toDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, father_name = $3, cnic = $4, phone = $5, address = $6, last_updated_at = $7, last_updated_by = $8
		WHERE customer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		customer.CustomerID, customer.Name, customer.FatherName, customer.CNIC,
		customer.Phone, customer.Address, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) ListCustomersByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, project_id, name, father_name, cnic, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE project_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var m models.Customer
		if err := rows.Scan(
			&m.CustomerID, &m.ProjectID, &m.Name, &m.FatherName, &m.CNIC, &m.Phone, &m.Address,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, toDomainCustomer(m))
	}
	return customers, rows.Err()
}
