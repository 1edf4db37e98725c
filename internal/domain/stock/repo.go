package stock

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same queries
// serve direct calls and calls inside RunInTx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo is the PostgreSQL-backed Store.
type Repo struct {
	q    querier
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{q: pool, pool: pool} }

var (
	_ Store    = (*Repo)(nil)
	_ TxRunner = (*Repo)(nil)
)

// RunInTx commits the ledger delta and the log change together or not at all.
func (r *Repo) RunInTx(ctx context.Context, fn func(Store) error) error {
	if r.pool == nil {
		// already running inside a transaction
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Repo{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) LoadStock(ctx context.Context, equipmentID int64) (*Record, error) {
	row := r.q.QueryRow(ctx, `
		SELECT equipment_id, qty_on_hand, received_total
		FROM stock_records WHERE equipment_id = $1
	`, equipmentID)
	var rec Record
	if err := row.Scan(&rec.EquipmentID, &rec.QuantityOnHand, &rec.ReceivedTotal); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) SaveStock(ctx context.Context, rec Record) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_records (equipment_id, qty_on_hand, received_total)
		VALUES ($1,$2,$3)
		ON CONFLICT (equipment_id)
		DO UPDATE SET qty_on_hand = EXCLUDED.qty_on_hand, received_total = EXCLUDED.received_total
	`, rec.EquipmentID, rec.QuantityOnHand, rec.ReceivedTotal)
	return err
}

func (r *Repo) AppendDelivery(ctx context.Context, d Delivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, equipment_id, employee_id, qty, delivered_at, status)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, d.ID, d.EquipmentID, d.EmployeeID, d.Quantity, d.DeliveredAt, string(d.Status))
	return err
}

func (r *Repo) RemoveDelivery(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE deliveries SET status = 'reversed'
		WHERE id = $1 AND status = 'active'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repo) GetDelivery(ctx context.Context, id string) (*Delivery, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, equipment_id, employee_id, qty, delivered_at, status
		FROM deliveries WHERE id = $1
	`, id)
	var d Delivery
	if err := row.Scan(&d.ID, &d.EquipmentID, &d.EmployeeID, &d.Quantity, &d.DeliveredAt, &d.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repo) ListStock(ctx context.Context) ([]Record, error) {
	rows, err := r.q.Query(ctx, `
		SELECT equipment_id, qty_on_hand, received_total
		FROM stock_records
		ORDER BY equipment_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.EquipmentID, &rec.QuantityOnHand, &rec.ReceivedTotal); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repo) ListDeliveries(ctx context.Context, equipmentID int64) ([]Delivery, error) {
	q := `
		SELECT id, equipment_id, employee_id, qty, delivered_at, status
		FROM deliveries
	`
	var args []any
	if equipmentID != 0 {
		q += " WHERE equipment_id = $1"
		args = append(args, equipmentID)
	}
	q += " ORDER BY delivered_at, id"

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.EquipmentID, &d.EmployeeID, &d.Quantity, &d.DeliveredAt, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
