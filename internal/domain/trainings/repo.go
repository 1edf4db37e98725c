package trainings

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, employeeID int64, name string, completedAt time.Time, expiresAt *time.Time) (*Training, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO trainings (employee_id, name, completed_at, expires_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id, employee_id, name, completed_at, expires_at, created_at
	`, employeeID, name, completedAt, expiresAt)
	var t Training
	if err := row.Scan(&t.ID, &t.EmployeeID, &t.Name, &t.CompletedAt, &t.ExpiresAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Training, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, employee_id, name, completed_at, expires_at, created_at
		FROM trainings WHERE id = $1
	`, id)
	var t Training
	if err := row.Scan(&t.ID, &t.EmployeeID, &t.Name, &t.CompletedAt, &t.ExpiresAt, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// List returns all trainings, or one employee's when employeeID != 0.
func (r *Repo) List(ctx context.Context, employeeID int64) ([]Training, error) {
	q := `
		SELECT id, employee_id, name, completed_at, expires_at, created_at
		FROM trainings
	`
	var args []any
	if employeeID != 0 {
		q += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	q += " ORDER BY completed_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Training
	for rows.Next() {
		var t Training
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Name, &t.CompletedAt, &t.ExpiresAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	return err
}
