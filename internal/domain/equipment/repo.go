package equipment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, caCode string, caExpiresAt *time.Time, minStock int64) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO equipment (name, ca_code, ca_expires_at, min_stock, active)
		VALUES ($1,$2,$3,$4,TRUE)
		RETURNING id, name, ca_code, ca_expires_at, min_stock, active, created_at
	`, name, caCode, caExpiresAt, minStock)
	return scanOne(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, ca_code, ca_expires_at, min_stock, active, created_at
		FROM equipment WHERE id = $1
	`, id)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) Update(ctx context.Context, id int64, name, caCode string, caExpiresAt *time.Time, minStock int64) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE equipment
		SET name=$2, ca_code=$3, ca_expires_at=$4, min_stock=$5
		WHERE id=$1
		RETURNING id, name, ca_code, ca_expires_at, min_stock, active, created_at
	`, id, name, caCode, caExpiresAt, minStock)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE equipment SET active=$2 WHERE id=$1
		RETURNING id, name, ca_code, ca_expires_at, min_stock, active, created_at
	`, id, active)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	return err
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Equipment, error) {
	q := `
		SELECT id, name, ca_code, ca_expires_at, min_stock, active, created_at
		FROM equipment
	`
	if onlyActive {
		q += " WHERE active = TRUE"
	}
	q += " ORDER BY name"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Equipment
	for rows.Next() {
		var e Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.CACode, &e.CAExpiresAt, &e.MinStock, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOne(row pgx.Row) (*Equipment, error) {
	var e Equipment
	if err := row.Scan(&e.ID, &e.Name, &e.CACode, &e.CAExpiresAt, &e.MinStock, &e.Active, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
