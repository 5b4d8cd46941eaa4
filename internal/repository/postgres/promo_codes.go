package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
)

const promoColumns = `id, code, discount_type, discount_value, max_discount,
	min_purchase_amount, expiry_date, usage_limit, usage_count, is_active, created_at`

type PromoCodeRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PromoCodeRepo) With(db DB) *PromoCodeRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PromoCodeRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *PromoCodeRepo) List(ctx context.Context) ([]domain.PromoCode, error) {
	const op = "postgresrepo.PromoCodeRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+promoColumns+`
		 FROM promo_codes
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.PromoCode{}
	for rows.Next() {
		var p domain.PromoCode
		if err := scanPromo(rows, &p); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *PromoCodeRepo) Get(ctx context.Context, id uuid.UUID) (*domain.PromoCode, error) {
	const op = "postgresrepo.PromoCodeRepo.Get"

	var p domain.PromoCode
	err := scanPromo(r.handle().QueryRow(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE id = $1`,
		id,
	), &p)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

// GetByCode looks up a promo code by its normalized code, active or not.
//
// Returns:
//   - error: repository.ErrNotFound if there is no such code.
func (r *PromoCodeRepo) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	const op = "postgresrepo.PromoCodeRepo.GetByCode"

	var p domain.PromoCode
	err := scanPromo(r.handle().QueryRow(ctx,
		`SELECT `+promoColumns+`
		 FROM promo_codes
		 WHERE code = $1`,
		code,
	), &p)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

// Create inserts a promo code.
//
// Returns:
//   - error: repository.ErrConflict if the code already exists.
func (r *PromoCodeRepo) Create(ctx context.Context, p *domain.PromoCode) error {
	const op = "postgresrepo.PromoCodeRepo.Create"

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.handle().QueryRow(ctx,
		`INSERT INTO promo_codes(id, code, discount_type, discount_value, max_discount,
			min_purchase_amount, expiry_date, usage_limit, usage_count, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		p.ID, p.Code, string(p.DiscountType), p.DiscountValue, p.MaxDiscount,
		p.MinPurchaseAmount, p.ExpiryDate, p.UsageLimit, p.UsageCount, p.IsActive,
	).Scan(&p.CreatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Update replaces every mutable field of a promo code.
//
// Returns:
//   - error: repository.ErrNotFound if the promo code is not found.
//   - error: repository.ErrConflict if the new code is taken.
func (r *PromoCodeRepo) Update(ctx context.Context, p *domain.PromoCode) error {
	const op = "postgresrepo.PromoCodeRepo.Update"

	err := r.handle().QueryRow(ctx,
		`UPDATE promo_codes
		 SET code = $2, discount_type = $3, discount_value = $4, max_discount = $5,
		 	min_purchase_amount = $6, expiry_date = $7, usage_limit = $8,
		 	usage_count = $9, is_active = $10
		 WHERE id = $1
		 RETURNING created_at`,
		p.ID, p.Code, string(p.DiscountType), p.DiscountValue, p.MaxDiscount,
		p.MinPurchaseAmount, p.ExpiryDate, p.UsageLimit, p.UsageCount, p.IsActive,
	).Scan(&p.CreatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *PromoCodeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.PromoCodeRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// ConsumeUsage counts one use of a code that is still redeemable at now.
//
// Returns:
//   - error: repository.ErrPromoUnavailable if the code is inactive, expired
//     or out of uses.
func (r *PromoCodeRepo) ConsumeUsage(ctx context.Context, code string, now time.Time) error {
	const op = "postgresrepo.PromoCodeRepo.ConsumeUsage"

	tag, err := r.handle().Exec(ctx,
		`UPDATE promo_codes
		 SET usage_count = usage_count + 1
		 WHERE code = $1
		 	AND is_active
		 	AND expiry_date >= $2
		 	AND (usage_limit IS NULL OR usage_count < usage_limit)`,
		code, now,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrPromoUnavailable)
	}

	return nil
}

func (r *PromoCodeRepo) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	const op = "postgresrepo.PromoCodeRepo.DeactivateExpired"

	tag, err := r.handle().Exec(ctx,
		`UPDATE promo_codes
		 SET is_active = false
		 WHERE is_active AND expiry_date < $1`,
		cutoff,
	)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return tag.RowsAffected(), nil
}

func scanPromo(row pgx.Row, p *domain.PromoCode) error {
	var discountType string

	if err := row.Scan(
		&p.ID,
		&p.Code,
		&discountType,
		&p.DiscountValue,
		&p.MaxDiscount,
		&p.MinPurchaseAmount,
		&p.ExpiryDate,
		&p.UsageLimit,
		&p.UsageCount,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return err
	}

	p.DiscountType = domain.DiscountType(discountType)

	return nil
}
