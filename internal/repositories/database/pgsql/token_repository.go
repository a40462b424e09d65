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
	"github.com/EstateBooks/plot_booking_app/internal/utils/pagination"
)

type PgxTokenRepository struct {
	pool *pgxpool.Pool
}

func newPgxTokenRepository(pool *pgxpool.Pool) portsrepo.TokenRepositoryFacade {
	return &PgxTokenRepository{pool: pool}
}

var _ portsrepo.TokenRepositoryFacade = (*PgxTokenRepository)(nil)

func toDomainToken(m models.Token, plotIDs []string) domain.Token {
	return domain.Token{
		TokenID:       m.TokenID,
		DocumentNo:    m.DocumentNo,
		ProjectID:     m.ProjectID,
		CustomerID:    m.CustomerID,
		PlotIDs:       plotIDs,
		Amount:        m.Amount,
		TokenDate:     m.TokenDate,
		ExpiryDate:    m.ExpiryDate,
		BankID:        m.BankID,
		PaymentMethod: m.PaymentMethod,
		Status:        domain.TokenStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const tokenColumns = `token_id, document_no, project_id, customer_id, amount, token_date, expiry_date, bank_id, payment_method, status, created_at, created_by, last_updated_at, last_updated_by`

func scanToken(row pgx.Row) (models.Token, error) {
	var m models.Token
	err := row.Scan(
		&m.TokenID, &m.DocumentNo, &m.ProjectID, &m.CustomerID, &m.Amount, &m.TokenDate,
		&m.ExpiryDate, &m.BankID, &m.PaymentMethod, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTokenRepository) NextTokenSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	query := `
		INSERT INTO project_sequences (project_id, seq_name, value)
		VALUES ($1, 'token', 1)
		ON CONFLICT (project_id, seq_name) DO UPDATE SET value = project_sequences.value + 1
		RETURNING value;
	`
	var seq int
	if err := tx.QueryRow(ctx, query, projectID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance token sequence for project %s: %w", projectID, err)
	}
	return seq, nil
}

func (r *PgxTokenRepository) InsertTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	query := `
		INSERT INTO tokens (` + tokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		token.TokenID, token.DocumentNo, token.ProjectID, token.CustomerID, token.Amount,
		token.TokenDate, token.ExpiryDate, token.BankID, token.PaymentMethod, string(token.Status),
		token.CreatedAt, token.CreatedBy, token.LastUpdatedAt, token.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: token %s already exists", apperrors.ErrDuplicate, token.DocumentNo)
		}
		return fmt.Errorf("failed to insert token %s: %w", token.TokenID, err)
	}
	for _, plotID := range token.PlotIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO token_plots (token_id, plot_id) VALUES ($1, $2);`, token.TokenID, plotID); err != nil {
			return fmt.Errorf("failed to link plot %s to token %s: %w", plotID, token.TokenID, err)
		}
	}
	return nil
}

func (r *PgxTokenRepository) UpdateTokenInTx(ctx context.Context, tx pgx.Tx, token domain.Token) error {
	query := `
		UPDATE tokens
		SET amount = $2, token_date = $3, expiry_date = $4, bank_id = $5, payment_method = $6, last_updated_at = $7, last_updated_by = $8
		WHERE token_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		token.TokenID, token.Amount, token.TokenDate, token.ExpiryDate, token.BankID,
		token.PaymentMethod, token.LastUpdatedAt, token.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update token %s: %w", token.TokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTokenRepository) UpdateTokenStatusInTx(ctx context.Context, tx pgx.Tx, tokenID string, status domain.TokenStatus, userID string) error {
	query := `
		UPDATE tokens
		SET status = $2, last_updated_at = now(), last_updated_by = $3
		WHERE token_id = $1;
	`
	tag, err := tx.Exec(ctx, query, tokenID, string(status), userID)
	if err != nil {
		return fmt.Errorf("failed to update token status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTokenRepository) FindTokenByID(ctx context.Context, tokenID string) (*domain.Token, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM tokens
		WHERE token_id = $1;
	`
	m, err := scanToken(r.pool.QueryRow(ctx, query, tokenID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find token %s: %w", tokenID, err)
	}

	plotIDs, err := r.plotIDsFor(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	token := toDomainToken(m, plotIDs)
	return &token, nil
}

func (r *PgxTokenRepository) plotIDsFor(ctx context.Context, tokenID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT plot_id FROM token_plots WHERE token_id = $1 ORDER BY plot_id;`, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token plot links: %w", err)
	}
	defer rows.Close()

	var plotIDs []string
	for rows.Next() {
		var plotID string
		if err := rows.Scan(&plotID); err != nil {
			return nil, fmt.Errorf("failed to scan plot link: %w", err)
		}
		plotIDs = append(plotIDs, plotID)
	}
	return plotIDs, rows.Err()
}

func (r *PgxTokenRepository) ListTokensByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Token, *string, error) {
	args := []interface{}{projectID, limit + 1}
	query := `
		SELECT ` + tokenColumns + `
		FROM tokens
		WHERE project_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		tokenDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (token_date, created_at) < ($3, $4)`
		args = append(args, tokenDate, createdAt)
	}
	query += `
		ORDER BY token_date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.Token
	for rows.Next() {
		m, err := scanToken(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		tokens = append(tokens, toDomainToken(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *string
	if len(tokens) > limit {
		tokens = tokens[:limit]
		last := tokens[len(tokens)-1]
		t := pagination.EncodeToken(last.TokenDate, last.CreatedAt)
		next = &t
	}

	for i := range tokens {
		plotIDs, err := r.plotIDsFor(ctx, tokens[i].TokenID)
		if err != nil {
			return nil, nil, err
		}
		tokens[i].PlotIDs = plotIDs
	}
	return tokens, next, nil
}
