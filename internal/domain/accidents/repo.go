package accidents

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, employeeID int64, occurredAt time.Time, daysLost int64, cid, description string) (*Accident, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accidents (employee_id, occurred_at, days_lost, cid, description)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, employee_id, occurred_at, days_lost, cid, description, created_at
	`, employeeID, occurredAt, daysLost, cid, description)
	var a Accident
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.OccurredAt, &a.DaysLost, &a.CID, &a.Description, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Accident, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, employee_id, occurred_at, days_lost, cid, description, created_at
		FROM accidents WHERE id = $1
	`, id)
	var a Accident
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.OccurredAt, &a.DaysLost, &a.CID, &a.Description, &a.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// List returns all accidents, or one employee's when employeeID != 0.
func (r *Repo) List(ctx context.Context, employeeID int64) ([]Accident, error) {
	q := `
		SELECT id, employee_id, occurred_at, days_lost, cid, description, created_at
		FROM accidents
	`
	var args []any
	if employeeID != 0 {
		q += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	q += " ORDER BY occurred_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Accident
	for rows.Next() {
		var a Accident
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.OccurredAt, &a.DaysLost, &a.CID, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// TotalDaysLost sums absence days in a period, for the dashboard.
func (r *Repo) TotalDaysLost(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(days_lost), 0)
		FROM accidents
		WHERE occurred_at >= $1 AND occurred_at < $2
	`, from, to).Scan(&total)
	return total, err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accidents WHERE id = $1`, id)
	return err
}
