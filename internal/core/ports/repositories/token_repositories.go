package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

// TokenReader defines read operations for token data.
type TokenReader interface {
	// FindTokenByID retrieves a token with its plot links.
	FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error)

	// ListTokensByProject retrieves a paginated list of tokens.
	ListTokensByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Token, *string, error)
}

// TokenWriter defines in-transaction write operations for token data.
type TokenWriter interface {
	// NextTokenSeqInTx atomically increments and returns the per-project
	// token document sequence.
	NextTokenSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error)

	// InsertTokenInTx inserts the token row and its plot links.
	InsertTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error

	// UpdateTokenInTx overwrites the mutable fields of a token.
	UpdateTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error

	// UpdateTokenStatusInTx sets only the lifecycle status of a token.
	UpdateTokenStatusInTx(ctx context.Context, tx pgx.Tx, tokenID string, status domain.TokenStatus, userID string) error
}

// TokenRepositoryFacade combines token reads and writes.
type TokenRepositoryFacade interface {
	TokenReader
	TokenWriter
}
