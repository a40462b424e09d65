package dto

import (
	"time"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new bank account.
type CreateAccountRequest struct {
	ProjectID       string             `json:"projectID" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	UsedFor         domain.AccountRole `json:"usedFor"`
	MainType        domain.AccountType `json:"mainType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	DetailType      string             `json:"detailType"`
	ParentAccountID *string            `json:"parentAccountID"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name       *string             `json:"name"`
	UsedFor    *domain.AccountRole `json:"usedFor"`
	DetailType *string             `json:"detailType"`
}

// AccountResponse mirrors domain.BankAccount for API output.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	ProjectID       string             `json:"projectID"`
	Name            string             `json:"name"`
	UsedFor         domain.AccountRole `json:"usedFor"`
	MainType        domain.AccountType `json:"mainType"`
	DetailType      string             `json:"detailType"`
	ParentAccountID string             `json:"parentAccountID"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.BankAccount to AccountResponse.
func ToAccountResponse(a *domain.BankAccount) AccountResponse {
	resp := AccountResponse{
		AccountID:  a.AccountID,
		ProjectID:  a.ProjectID,
		Name:       a.Name,
		UsedFor:    a.UsedFor,
		MainType:   a.MainType,
		DetailType: a.DetailType,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
	}
	if a.ParentAccountID != nil {
		resp.ParentAccountID = *a.ParentAccountID
	}
	return resp
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.BankAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
