package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
)

const bookingColumns = `id, full_name, email, experience_id, experience_title, date, time,
	quantity, subtotal, taxes, promo_code, discount_amount, total, ref_id, status, created_at`

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a booking. A clash on ref_id inserts nothing so the
// surrounding transaction stays usable for another attempt.
//
// Returns:
//   - error: repository.ErrConflict if the reference id is taken.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	const op = "postgresrepo.BookingRepo.Create"

	var promo *string
	if b.PromoCode != "" {
		promo = &b.PromoCode
	}

	tag, err := r.handle().Exec(ctx,
		`INSERT INTO bookings(id, full_name, email, experience_id, experience_title,
			date, time, quantity, subtotal, taxes, promo_code, discount_amount,
			total, ref_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (ref_id) DO NOTHING`,
		b.ID, b.FullName, b.Email, b.ExperienceID, b.ExperienceTitle,
		b.Date, b.Time, b.Quantity, b.Subtotal, b.Taxes, promo, b.DiscountAmount,
		b.Total, b.RefID, string(b.Status), b.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	return nil
}

// GetByRef retrieves a booking by its customer-facing reference id.
//
// Returns:
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) GetByRef(ctx context.Context, refID string) (*domain.Booking, error) {
	const op = "postgresrepo.BookingRepo.GetByRef"

	var b domain.Booking
	err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE ref_id = $1`,
		refID,
	), &b)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

func (r *BookingRepo) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	const op = "postgresrepo.BookingRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	var (
		promo  *string
		status string
	)

	if err := row.Scan(
		&b.ID,
		&b.FullName,
		&b.Email,
		&b.ExperienceID,
		&b.ExperienceTitle,
		&b.Date,
		&b.Time,
		&b.Quantity,
		&b.Subtotal,
		&b.Taxes,
		&promo,
		&b.DiscountAmount,
		&b.Total,
		&b.RefID,
		&status,
		&b.CreatedAt,
	); err != nil {
		return err
	}

	if promo != nil {
		b.PromoCode = *promo
	}
	b.Status = domain.BookingStatus(status)

	return nil
}
