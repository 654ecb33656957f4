package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-manager/internal/domain/bookings"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, dog_id, kennel_id,
			check_in, check_out, total_cost, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		b.ID,
		b.DogID,
		b.KennelID,
		b.CheckIn,
		b.CheckOut,
		b.TotalCost,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET
			dog_id = $2,
			kennel_id = $3,
			check_in = $4,
			check_out = $5,
			total_cost = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1
	`,
		b.ID,
		b.DogID,
		b.KennelID,
		b.CheckIn,
		b.CheckOut,
		b.TotalCost,
		b.Status,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return bookings.ErrNotFound
	}
	return nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return bookings.Booking{}, bookings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, dog_id, kennel_id,
			check_in, check_out, total_cost, status,
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id)

	var b bookings.Booking
	if err := row.Scan(
		&b.ID,
		&b.DogID,
		&b.KennelID,
		&b.CheckIn,
		&b.CheckOut,
		&b.TotalCost,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return bookings.Booking{}, bookings.ErrNotFound
		}
		return bookings.Booking{}, err
	}
	return b, nil
}

func (r *BookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	return r.list(ctx, `
		SELECT
			id, dog_id, kennel_id,
			check_in, check_out, total_cost, status,
			created_at, updated_at
		FROM bookings
		ORDER BY created_at ASC
	`)
}

func (r *BookingsRepo) ListByDogIDs(ctx context.Context, dogIDs []string) ([]bookings.Booking, error) {
	if len(dogIDs) == 0 {
		return nil, nil
	}
	// pgx mapea []string a text[].
	return r.list(ctx, `
		SELECT
			id, dog_id, kennel_id,
			check_in, check_out, total_cost, status,
			created_at, updated_at
		FROM bookings
		WHERE dog_id = ANY($1)
		ORDER BY created_at ASC
	`, dogIDs)
}

func (r *BookingsRepo) list(ctx context.Context, query string, args ...any) ([]bookings.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		var b bookings.Booking
		if err := rows.Scan(
			&b.ID,
			&b.DogID,
			&b.KennelID,
			&b.CheckIn,
			&b.CheckOut,
			&b.TotalCost,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}
