package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
)

const experienceColumns = `id, title, description, location, image_url, price,
	about, includes_text, created_at, updated_at`

type ExperienceRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ExperienceRepo) With(db DB) *ExperienceRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ExperienceRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// List returns all experiences with their schedules, newest first.
func (r *ExperienceRepo) List(ctx context.Context) ([]domain.Experience, error) {
	const op = "postgresrepo.ExperienceRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+experienceColumns+`
		 FROM experiences
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.Experience{}
	var ids []uuid.UUID
	for rows.Next() {
		var e domain.Experience
		if err := scanExperience(rows, &e); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	if len(ids) == 0 {
		return out, nil
	}

	schedules, err := loadSchedules(ctx, db, ids)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	for i := range out {
		out[i].AvailableDates = schedules[out[i].ID]
		out[i].Normalize()
	}

	return out, nil
}

// Get retrieves an experience by its ID.
//
// Returns:
//   - *domain.Experience: the experience with its schedule when found.
//   - error: repository.ErrNotFound if the experience is not found.
func (r *ExperienceRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Experience, error) {
	const op = "postgresrepo.ExperienceRepo.Get"

	db := r.handle()

	var e domain.Experience
	err := scanExperience(db.QueryRow(ctx,
		`SELECT `+experienceColumns+`
		 FROM experiences WHERE id = $1`,
		id,
	), &e)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	schedules, err := loadSchedules(ctx, db, []uuid.UUID{id})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	e.AvailableDates = schedules[id]
	e.Normalize()

	return &e, nil
}

func (r *ExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	const op = "postgresrepo.ExperienceRepo.Create"

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	err := inTx(ctx, r.pool, r.db, func(db DB) error {
		if err := db.QueryRow(ctx,
			`INSERT INTO experiences(id, title, description, location, image_url,
				price, about, includes_text)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING created_at, updated_at`,
			e.ID, e.Title, e.Description, e.Location, e.ImageURL,
			e.Price, e.About, e.IncludesText,
		).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
			return err
		}

		return insertSchedule(ctx, db, e)
	})
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Update replaces every field and the whole schedule of an experience.
//
// Returns:
//   - error: repository.ErrNotFound if the experience is not found.
func (r *ExperienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	const op = "postgresrepo.ExperienceRepo.Update"

	err := inTx(ctx, r.pool, r.db, func(db DB) error {
		if err := db.QueryRow(ctx,
			`UPDATE experiences
			 SET title = $2, description = $3, location = $4, image_url = $5,
			 	price = $6, about = $7, includes_text = $8, updated_at = now()
			 WHERE id = $1
			 RETURNING created_at, updated_at`,
			e.ID, e.Title, e.Description, e.Location, e.ImageURL,
			e.Price, e.About, e.IncludesText,
		).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
			return err
		}

		if _, err := db.Exec(ctx,
			`DELETE FROM experience_dates WHERE experience_id = $1`,
			e.ID,
		); err != nil {
			return err
		}

		return insertSchedule(ctx, db, e)
	})
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.ExperienceRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// IncrementBooked books qty places of a slot in a single conditional update.
//
// Returns:
//   - error: repository.ErrCapacityExceeded if the slot is missing or has
//     fewer than qty places left.
func (r *ExperienceRepo) IncrementBooked(
	ctx context.Context,
	id uuid.UUID,
	date, t string,
	qty int,
) error {
	const op = "postgresrepo.ExperienceRepo.IncrementBooked"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE experience_slots
		 SET booked = booked + $4
		 WHERE experience_id = $1
		 	AND date = $2
		 	AND time = $3
		 	AND available - booked >= $4`,
		id, date, t, qty,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrCapacityExceeded)
	}

	return nil
}

func scanExperience(row pgx.Row, e *domain.Experience) error {
	return row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.ImageURL,
		&e.Price,
		&e.About,
		&e.IncludesText,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func insertSchedule(ctx context.Context, db DB, e *domain.Experience) error {
	if len(e.AvailableDates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, d := range e.AvailableDates {
		batch.Queue(
			`INSERT INTO experience_dates(experience_id, date)
			 VALUES ($1, $2)`,
			e.ID, d.Date,
		)
		for _, s := range d.Slots {
			batch.Queue(
				`INSERT INTO experience_slots(experience_id, date, time, available, booked)
				 VALUES ($1, $2, $3, $4, $5)`,
				e.ID, d.Date, s.Time, s.Available, s.Booked,
			)
		}
	}

	return db.SendBatch(ctx, batch).Close()
}

func loadSchedules(
	ctx context.Context,
	db DB,
	ids []uuid.UUID,
) (map[uuid.UUID][]domain.AvailableDate, error) {
	rows, err := db.Query(ctx,
		`SELECT d.experience_id, d.date, s.time, s.available, s.booked
		 FROM experience_dates d
		 LEFT JOIN experience_slots s
		 	ON s.experience_id = d.experience_id AND s.date = d.date
		 WHERE d.experience_id = ANY($1)
		 ORDER BY d.experience_id, d.date, s.time`,
		ids,
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make(map[uuid.UUID][]domain.AvailableDate, len(ids))
	for rows.Next() {
		var (
			expID     uuid.UUID
			date      string
			slotTime  *string
			available *int
			booked    *int
		)
		if err := rows.Scan(&expID, &date, &slotTime, &available, &booked); err != nil {
			return nil, err
		}

		dates := out[expID]
		if n := len(dates); n == 0 || dates[n-1].Date != date {
			dates = append(dates, domain.AvailableDate{Date: date, Slots: []domain.Slot{}})
		}

		if slotTime != nil {
			last := &dates[len(dates)-1]
			last.Slots = append(last.Slots, domain.Slot{
				Time:      *slotTime,
				Available: deref(available),
				Booked:    deref(booked),
			})
		}

		out[expID] = dates
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
