package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-manager/internal/domain/kennels"
)

type KennelsRepo struct {
	db *sql.DB
}

func NewKennelsRepo(db *sql.DB) *KennelsRepo {
	return &KennelsRepo{db: db}
}

func (r *KennelsRepo) Create(ctx context.Context, k kennels.Kennel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kennels (
			id, name, size, available, price_per_day,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		k.ID,
		k.Name,
		string(k.Size),
		k.Available,
		k.PricePerDay,
		k.CreatedAt,
		k.UpdatedAt,
	)
	return err
}

func (r *KennelsRepo) Update(ctx context.Context, k kennels.Kennel) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE kennels
		SET
			name = $2,
			size = $3,
			available = $4,
			price_per_day = $5,
			updated_at = $6
		WHERE id = $1
	`,
		k.ID,
		k.Name,
		string(k.Size),
		k.Available,
		k.PricePerDay,
		k.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return kennels.ErrNotFound
	}
	return nil
}

func (r *KennelsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kennels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return kennels.ErrNotFound
	}
	return nil
}

func (r *KennelsRepo) GetByID(ctx context.Context, id string) (kennels.Kennel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return kennels.Kennel{}, kennels.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, size, available, price_per_day,
			created_at, updated_at
		FROM kennels
		WHERE id = $1
	`, id)

	var k kennels.Kennel
	var size string
	if err := row.Scan(
		&k.ID,
		&k.Name,
		&size,
		&k.Available,
		&k.PricePerDay,
		&k.CreatedAt,
		&k.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return kennels.Kennel{}, kennels.ErrNotFound
		}
		return kennels.Kennel{}, err
	}
	k.Size = kennels.Size(size)
	return k, nil
}

func (r *KennelsRepo) List(ctx context.Context) ([]kennels.Kennel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, size, available, price_per_day,
			created_at, updated_at
		FROM kennels
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]kennels.Kennel, 0)
	for rows.Next() {
		var k kennels.Kennel
		var size string
		if err := rows.Scan(
			&k.ID,
			&k.Name,
			&size,
			&k.Available,
			&k.PricePerDay,
			&k.CreatedAt,
			&k.UpdatedAt,
		); err != nil {
			return nil, err
		}
		k.Size = kennels.Size(size)
		out = append(out, k)
	}

	return out, rows.Err()
}
