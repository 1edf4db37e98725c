package employees

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, cpf, position, department string, hiredAt *time.Time) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (name, cpf, position, department, hired_at, active)
		VALUES ($1,$2,$3,$4,$5,TRUE)
		RETURNING id, name, cpf, position, department, hired_at, active, created_at
	`, name, cpf, position, department, hiredAt)
	return scanOne(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, cpf, position, department, hired_at, active, created_at
		FROM employees WHERE id = $1
	`, id)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) Update(ctx context.Context, id int64, name, cpf, position, department string) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE employees SET name=$2, cpf=$3, position=$4, department=$5
		WHERE id=$1
		RETURNING id, name, cpf, position, department, hired_at, active, created_at
	`, id, name, cpf, position, department)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE employees SET active=$2 WHERE id=$1
		RETURNING id, name, cpf, position, department, hired_at, active, created_at
	`, id, active)
	e, err := scanOne(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Employee, error) {
	q := `
		SELECT id, name, cpf, position, department, hired_at, active, created_at
		FROM employees
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
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.CPF, &e.Position, &e.Department, &e.HiredAt, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOne(row pgx.Row) (*Employee, error) {
	var e Employee
	if err := row.Scan(&e.ID, &e.Name, &e.CPF, &e.Position, &e.Department, &e.HiredAt, &e.Active, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
