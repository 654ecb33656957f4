package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-manager/internal/domain/customers"
)

type CustomersRepo struct {
	db *sql.DB
}

func NewCustomersRepo(db *sql.DB) *CustomersRepo {
	return &CustomersRepo{db: db}
}

func (r *CustomersRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, name, email, phone, user_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		toNullString(c.UserID),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if constraint, ok := isUniqueViolation(err); ok {
		// user_id tiene índice único parcial; email índice único simple.
		if strings.Contains(constraint, "user") {
			return customers.ErrUserLinked
		}
		return customers.ErrEmailTaken
	}
	return err
}

func (r *CustomersRepo) Update(ctx context.Context, c customers.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET
			name = $2,
			email = $3,
			phone = $4,
			updated_at = $5
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.UpdatedAt,
	)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return customers.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

func (r *CustomersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return customers.ErrNotFound
	}
	return nil
}

func (r *CustomersRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customers.Customer{}, customers.ErrNotFound
	}
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *CustomersRepo) GetByUserID(ctx context.Context, userID string) (customers.Customer, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return customers.Customer{}, customers.ErrNotFound
	}
	return r.getBy(ctx, `WHERE user_id = $1`, userID)
}

func (r *CustomersRepo) getBy(ctx context.Context, where string, arg any) (customers.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, email, phone, user_id,
			created_at, updated_at
		FROM customers
	`+where, arg)

	var c customers.Customer
	var userID sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&userID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, err
	}
	if userID.Valid {
		c.UserID = userID.String
	}
	return c, nil
}

func (r *CustomersRepo) List(ctx context.Context) ([]customers.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, email, phone, user_id,
			created_at, updated_at
		FROM customers
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Customer, 0)
	for rows.Next() {
		var c customers.Customer
		var userID sql.NullString
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&userID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			c.UserID = userID.String
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

// user_id es nullable: "" en dominio => NULL en la tabla (el índice único
// parcial solo aplica a non-null).
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
