package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// PostingResponse mirrors domain.BankTransaction for API output.
type PostingResponse struct {
	TransactionID   string          `json:"transactionID"`
	ProjectID       string          `json:"projectID"`
	AccountID       string          `json:"accountID"`
	Kind            string          `json:"kind"`
	Payment         decimal.Decimal `json:"payment"`
	Deposit         decimal.Decimal `json:"deposit"`
	TransactionDate time.Time       `json:"transactionDate"`
	RelatedTable    string          `json:"relatedTable"`
	RelatedID       string          `json:"relatedID"`
	IsDeposit       bool            `json:"isDeposit"`
	IsChequeClear   bool            `json:"isChequeClear"`
}

// ToPostingResponse converts a domain.BankTransaction to PostingResponse.
func ToPostingResponse(p *domain.BankTransaction) PostingResponse {
	return PostingResponse{
		TransactionID:   p.TransactionID,
		ProjectID:       p.ProjectID,
		AccountID:       p.AccountID,
		Kind:            string(p.Kind),
		Payment:         p.Payment,
		Deposit:         p.Deposit,
		TransactionDate: p.TransactionDate,
		RelatedTable:    string(p.Ref.Table),
		RelatedID:       p.Ref.ID,
		IsDeposit:       p.IsDeposit,
		IsChequeClear:   p.IsChequeClear,
	}
}

// ToPostingResponses converts a slice of postings.
func ToPostingResponses(postings []domain.BankTransaction) []PostingResponse {
	responses := make([]PostingResponse, len(postings))
	for i := range postings {
		responses[i] = ToPostingResponse(&postings[i])
	}
	return responses
}

// ListPostingsResponse is a paginated posting list.
type ListPostingsResponse struct {
	Postings  []PostingResponse `json:"postings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AccountBalanceResponse is the on-demand balance of one account.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
