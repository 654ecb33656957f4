package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-manager/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, name, breed, age, customer_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		d.ID,
		d.Name,
		d.Breed,
		d.Age,
		toNullString(d.CustomerID),
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			breed = $3,
			age = $4,
			customer_id = $5,
			updated_at = $6
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		d.Age,
		toNullString(d.CustomerID),
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, breed, age, customer_id,
			created_at, updated_at
		FROM dogs
		WHERE id = $1
	`, id)

	d, err := scanDog(row.Scan)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, err
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	return r.list(ctx, `
		SELECT
			id, name, breed, age, customer_id,
			created_at, updated_at
		FROM dogs
		ORDER BY created_at ASC
	`)
}

func (r *DogsRepo) ListByCustomer(ctx context.Context, customerID string) ([]dogs.Dog, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT
			id, name, breed, age, customer_id,
			created_at, updated_at
		FROM dogs
		WHERE customer_id = $1
		ORDER BY created_at ASC
	`, customerID)
}

func (r *DogsRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dogs WHERE customer_id = $1
	`, customerID).Scan(&n)
	return n, err
}

func (r *DogsRepo) list(ctx context.Context, query string, args ...any) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func scanDog(scan func(...any) error) (dogs.Dog, error) {
	var d dogs.Dog
	var customerID sql.NullString
	if err := scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&d.Age,
		&customerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	if customerID.Valid {
		d.CustomerID = customerID.String
	}
	return d, nil
}
