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

type PgxBookingRepository struct {
	pool *pgxpool.Pool
}

func newPgxBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{pool: pool}
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

func toDomainBooking(m models.Booking, plotIDs []string) domain.Booking {
	return domain.Booking{
		BookingID:            m.BookingID,
		BookingNo:            m.BookingNo,
		ProjectID:            m.ProjectID,
		CustomerID:           m.CustomerID,
		PlotIDs:              plotIDs,
		TokenID:              m.TokenID,
		BookingDate:          m.BookingDate,
		TotalAmount:          m.TotalAmount,
		Advance:              m.Advance,
		AdvanceBankID:        m.AdvanceBankID,
		AdvancePaymentMethod: m.AdvancePaymentMethod,
		DealerName:           m.DealerName,
		DealerComissionAmt:   m.DealerComissionAmt,
		TotalReceivingAmount: m.TotalReceivingAmount,
		Remaining:            m.Remaining,
		Status:               domain.BookingStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const bookingColumns = `booking_id, booking_no, project_id, customer_id, token_id, booking_date, total_amount, advance, advance_bank_id, advance_payment_method, dealer_name, dealer_comission_amt, total_receiving_amount, remaining, status, created_at, created_by, last_updated_at, last_updated_by`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID, &m.BookingNo, &m.ProjectID, &m.CustomerID, &m.TokenID, &m.BookingDate,
		&m.TotalAmount, &m.Advance, &m.AdvanceBankID, &m.AdvancePaymentMethod,
		&m.DealerName, &m.DealerComissionAmt, &m.TotalReceivingAmount, &m.Remaining, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// NextBookingSeqInTx bumps the per-project booking counter atomically. The
// upsert serialises concurrent callers on the counter row, closing the
// read-then-increment race of scanning the latest booking number.
func (r *PgxBookingRepository) NextBookingSeqInTx(ctx context.Context, tx pgx.Tx, projectID string) (int, error) {
	query := `
		INSERT INTO project_sequences (project_id, seq_name, value)
		VALUES ($1, 'booking', 1)
		ON CONFLICT (project_id, seq_name) DO UPDATE SET value = project_sequences.value + 1
		RETURNING value;
	`
	var seq int
	if err := tx.QueryRow(ctx, query, projectID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance booking sequence for project %s: %w", projectID, err)
	}
	return seq, nil
}

func (r *PgxBookingRepository) InsertBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		booking.BookingID, booking.BookingNo, booking.ProjectID, booking.CustomerID, booking.TokenID,
		booking.BookingDate, booking.TotalAmount, booking.Advance, booking.AdvanceBankID,
		booking.AdvancePaymentMethod, booking.DealerName, booking.DealerComissionAmt,
		booking.TotalReceivingAmount, booking.Remaining, string(booking.Status),
		booking.CreatedAt, booking.CreatedBy, booking.LastUpdatedAt, booking.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: booking %s already exists", apperrors.ErrDuplicate, booking.BookingNo)
		}
		return fmt.Errorf("failed to insert booking %s: %w", booking.BookingID, err)
	}
	return r.replacePlotLinksInTx(ctx, tx, booking.BookingID, booking.PlotIDs)
}

func (r *PgxBookingRepository) replacePlotLinksInTx(ctx context.Context, tx pgx.Tx, bookingID string, plotIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM booking_plots WHERE booking_id = $1;`, bookingID); err != nil {
		return fmt.Errorf("failed to clear booking plot links: %w", err)
	}
	for _, plotID := range plotIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO booking_plots (booking_id, plot_id) VALUES ($1, $2);`, bookingID, plotID); err != nil {
			return fmt.Errorf("failed to link plot %s to booking %s: %w", plotID, bookingID, err)
		}
	}
	return nil
}

func (r *PgxBookingRepository) UpdateBookingInTx(ctx context.Context, tx pgx.Tx, booking domain.Booking) error {
	query := `
		UPDATE bookings
		SET booking_date = $2, total_amount = $3, advance = $4, advance_bank_id = $5,
		    advance_payment_method = $6, dealer_name = $7, dealer_comission_amt = $8,
		    total_receiving_amount = $9, remaining = $10, last_updated_at = $11, last_updated_by = $12
		WHERE booking_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		booking.BookingID, booking.BookingDate, booking.TotalAmount, booking.Advance,
		booking.AdvanceBankID, booking.AdvancePaymentMethod, booking.DealerName,
		booking.DealerComissionAmt, booking.TotalReceivingAmount, booking.Remaining,
		booking.LastUpdatedAt, booking.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.BookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.replacePlotLinksInTx(ctx, tx, booking.BookingID, booking.PlotIDs)
}

func (r *PgxBookingRepository) UpdateBookingStatusInTx(ctx context.Context, tx pgx.Tx, bookingID string, status domain.BookingStatus, userID string) error {
	query := `
		UPDATE bookings
		SET status = $2, last_updated_at = now(), last_updated_by = $3
		WHERE booking_id = $1;
	`
	tag, err := tx.Exec(ctx, query, bookingID, string(status), userID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookingRepository) DeleteBookingInTx(ctx context.Context, tx pgx.Tx, bookingID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM booking_plots WHERE booking_id = $1;`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking plot links: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM incoming_funds WHERE booking_id = $1;`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking funds: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE booking_id = $1;`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_id = $1;
	`
	m, err := scanBooking(r.pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking %s: %w", bookingID, err)
	}

	plotIDs, err := r.plotIDsFor(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	booking := toDomainBooking(m, plotIDs)
	return &booking, nil
}

func (r *PgxBookingRepository) plotIDsFor(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT plot_id FROM booking_plots WHERE booking_id = $1 ORDER BY plot_id;`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking plot links: %w", err)
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

func (r *PgxBookingRepository) ListBookingsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := []interface{}{projectID, limit + 1}
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE project_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		bookingDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (booking_date, created_at) < ($3, $4)`
		args = append(args, bookingDate, createdAt)
	}
	query += `
		ORDER BY booking_date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, toDomainBooking(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(bookings) > limit {
		bookings = bookings[:limit]
		last := bookings[len(bookings)-1]
		t := pagination.EncodeToken(last.BookingDate, last.CreatedAt)
		token = &t
	}

	for i := range bookings {
		plotIDs, err := r.plotIDsFor(ctx, bookings[i].BookingID)
		if err != nil {
			return nil, nil, err
		}
		bookings[i].PlotIDs = plotIDs
	}
	return bookings, token, nil
}

func (r *PgxBookingRepository) ListOpenBookingsWithRemaining(ctx context.Context) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'active' AND remaining > 0
		ORDER BY booking_date;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, toDomainBooking(m, nil))
	}
	return bookings, rows.Err()
}
