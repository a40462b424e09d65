package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Code    string `json:"code" binding:"required,alphanum,max=8"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateProjectRequest defines the fields a project update may change.
type UpdateProjectRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// ProjectResponse mirrors domain.Project for API output.
type ProjectResponse struct {
	ProjectID string    `json:"projectID"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID: p.ProjectID,
		Code:      p.Code,
		Name:      p.Name,
		Address:   p.Address,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	ProjectID  string `json:"projectID" binding:"required"`
	Name       string `json:"name" binding:"required"`
	FatherName string `json:"fatherName"`
	CNIC       string `json:"cnic"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateCustomerRequest defines the fields a customer update may change.
type UpdateCustomerRequest struct {
	Name       *string `json:"name"`
	FatherName *string `json:"fatherName"`
	CNIC       *string `json:"cnic"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

// CustomerResponse mirrors domain.Customer for API output.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	ProjectID  string    `json:"projectID"`
	Name       string    `json:"name"`
	FatherName string    `json:"fatherName,omitempty"`
	CNIC       string    `json:"cnic,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		ProjectID:  c.ProjectID,
		Name:       c.Name,
		FatherName: c.FatherName,
		CNIC:       c.CNIC,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
	}
}

// CreatePlotRequest defines the data needed to register a plot.
type CreatePlotRequest struct {
	ProjectID string          `json:"projectID" binding:"required"`
	Number    string          `json:"number" binding:"required"`
	Sector    string          `json:"sector"`
	AreaSqft  decimal.Decimal `json:"areaSqft"`
	CostPrice decimal.Decimal `json:"costPrice" binding:"decimalgt"`
	SalePrice decimal.Decimal `json:"salePrice"`
}

// UpdatePlotRequest defines the fields a plot update may change.
type UpdatePlotRequest struct {
	Number    *string          `json:"number"`
	Sector    *string          `json:"sector"`
	AreaSqft  *decimal.Decimal `json:"areaSqft"`
	CostPrice *decimal.Decimal `json:"costPrice"`
	SalePrice *decimal.Decimal `json:"salePrice"`
}

// PlotResponse mirrors domain.Plot for API output.
type PlotResponse struct {
	PlotID    string          `json:"plotID"`
	ProjectID string          `json:"projectID"`
	Number    string          `json:"number"`
	Sector    string          `json:"sector,omitempty"`
	AreaSqft  decimal.Decimal `json:"areaSqft"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Status    string          `json:"status"`
}

// ToPlotResponse converts a domain.Plot to PlotResponse.
func ToPlotResponse(p *domain.Plot) PlotResponse {
	return PlotResponse{
		PlotID:    p.PlotID,
		ProjectID: p.ProjectID,
		Number:    p.Number,
		Sector:    p.Sector,
		AreaSqft:  p.AreaSqft,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		Status:    string(p.Status),
	}
}
