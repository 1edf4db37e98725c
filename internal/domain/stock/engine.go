package stock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
)

// Catalog is the read-only view of the equipment catalog the engine validates
// against. (nil, nil) means the equipment does not exist.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*equipment.Equipment, error)
}

// Engine is the only writer of stock records. Every mutation runs as a single
// atomic unit: validate against the current ledger, then commit the ledger
// delta together with the delivery log change. Construct one per tenant and
// inject it; there is no package-level instance.
type Engine struct {
	mu      sync.Mutex
	store   Store
	catalog Catalog
	now     func() time.Time
}

func NewEngine(store Store, catalog Catalog) *Engine {
	return &Engine{store: store, catalog: catalog, now: time.Now}
}

// mutate serializes writers and, when the store supports transactions, groups
// the operation's writes so they commit or roll back together.
func (e *Engine) mutate(ctx context.Context, fn func(Store) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tx, ok := e.store.(TxRunner); ok {
		return tx.RunInTx(ctx, fn)
	}
	return fn(e.store)
}

func (e *Engine) equipmentExists(ctx context.Context, equipmentID int64) error {
	eq, err := e.catalog.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if eq == nil {
		return fmt.Errorf("equipment %d: %w", equipmentID, ErrNotFound)
	}
	return nil
}

// Register creates the ledger entry for an equipment type with its opening
// quantity. Registering twice is an error.
func (e *Engine) Register(ctx context.Context, equipmentID, initialQty int64) error {
	if initialQty < 0 {
		return fmt.Errorf("initial quantity %d: %w", initialQty, ErrInvalidQuantity)
	}
	if err := e.equipmentExists(ctx, equipmentID); err != nil {
		return err
	}
	return e.mutate(ctx, func(s Store) error {
		rec, err := s.LoadStock(ctx, equipmentID)
		if err != nil {
			return err
		}
		if rec != nil {
			return fmt.Errorf("equipment %d: %w", equipmentID, ErrAlreadyRegistered)
		}
		return s.SaveStock(ctx, Record{
			EquipmentID:    equipmentID,
			QuantityOnHand: initialQty,
			ReceivedTotal:  initialQty,
		})
	})
}

// Receive adds inbound stock. An unregistered equipment gets its ledger entry
// created on first receipt.
func (e *Engine) Receive(ctx context.Context, equipmentID, qty int64) error {
	if qty < 1 {
		return fmt.Errorf("quantity %d: %w", qty, ErrInvalidQuantity)
	}
	if err := e.equipmentExists(ctx, equipmentID); err != nil {
		return err
	}
	return e.mutate(ctx, func(s Store) error {
		rec, err := s.LoadStock(ctx, equipmentID)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = &Record{EquipmentID: equipmentID}
		}
		rec.QuantityOnHand += qty
		rec.ReceivedTotal += qty
		return s.SaveStock(ctx, *rec)
	})
}

// RecordDelivery issues qty units of an equipment to an employee. Fails with
// ErrInsufficientStock when the ledger cannot cover the quantity; the ledger
// and the log change together or not at all.
func (e *Engine) RecordDelivery(ctx context.Context, equipmentID, employeeID, qty int64) (*Delivery, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity %d: %w", qty, ErrInvalidQuantity)
	}
	if err := e.equipmentExists(ctx, equipmentID); err != nil {
		return nil, err
	}

	var out *Delivery
	err := e.mutate(ctx, func(s Store) error {
		d, err := applyDelivery(ctx, s, equipmentID, employeeID, qty, e.now())
		if err != nil {
			return fmt.Errorf("equipment %d: %w", equipmentID, err)
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReverseDelivery credits the delivered quantity back and retires the event.
// Reversing a missing or already-reversed delivery fails with ErrNotFound and
// never double-credits stock.
func (e *Engine) ReverseDelivery(ctx context.Context, deliveryID string) error {
	return e.mutate(ctx, func(s Store) error {
		return applyReversal(ctx, s, deliveryID)
	})
}

// EditDelivery corrects an existing delivery (new employee and/or quantity) as
// reverse + fresh delivery in one atomic unit. If the new quantity is not
// available, the original delivery stays active and stock is untouched.
func (e *Engine) EditDelivery(ctx context.Context, deliveryID string, newEmployeeID, newQty int64) (*Delivery, error) {
	if newQty < 1 {
		return nil, fmt.Errorf("quantity %d: %w", newQty, ErrInvalidQuantity)
	}

	var out *Delivery
	err := e.mutate(ctx, func(s Store) error {
		old, err := s.GetDelivery(ctx, deliveryID)
		if err != nil {
			return err
		}
		if old == nil || old.Status != StatusActive {
			return fmt.Errorf("delivery %s: %w", deliveryID, ErrNotFound)
		}
		if err := applyReversal(ctx, s, deliveryID); err != nil {
			return err
		}
		d, err := applyDelivery(ctx, s, old.EquipmentID, newEmployeeID, newQty, e.now())
		if err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BulkRecordDelivery issues a kit of items in one transaction: if any line
// fails, no line is committed. The returned error carries the offending
// equipment id.
func (e *Engine) BulkRecordDelivery(ctx context.Context, items []DeliveryRequest) ([]Delivery, error) {
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("equipment %d: quantity %d: %w", it.EquipmentID, it.Quantity, ErrInvalidQuantity)
		}
		if err := e.equipmentExists(ctx, it.EquipmentID); err != nil {
			return nil, err
		}
	}

	out := make([]Delivery, 0, len(items))
	err := e.mutate(ctx, func(s Store) error {
		out = out[:0]
		for _, it := range items {
			d, err := applyDelivery(ctx, s, it.EquipmentID, it.EmployeeID, it.Quantity, e.now())
			if err != nil {
				return fmt.Errorf("equipment %d: %w", it.EquipmentID, err)
			}
			out = append(out, *d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AvailableQuantity reads the current on-hand quantity. Unregistered equipment
// reads as zero stock, not an error.
func (e *Engine) AvailableQuantity(ctx context.Context, equipmentID int64) (int64, error) {
	rec, err := e.store.LoadStock(ctx, equipmentID)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, nil
	}
	return rec.QuantityOnHand, nil
}

// IsAvailable is an advisory read for presentation layers. RecordDelivery
// re-validates on its own; a true result may be stale by the time the caller
// acts on it.
func (e *Engine) IsAvailable(ctx context.Context, equipmentID, qty int64) (bool, error) {
	if qty < 1 {
		qty = 1
	}
	avail, err := e.AvailableQuantity(ctx, equipmentID)
	if err != nil {
		return false, err
	}
	return avail >= qty, nil
}

// CheckRemoval guards catalog deletion: an equipment whose ledger still holds
// delivery history cannot be removed.
func (e *Engine) CheckRemoval(ctx context.Context, equipmentID int64) error {
	ds, err := e.store.ListDeliveries(ctx, equipmentID)
	if err != nil {
		return err
	}
	if len(ds) > 0 {
		return fmt.Errorf("equipment %d: %w", equipmentID, ErrStockInUse)
	}
	return nil
}

func applyDelivery(ctx context.Context, s Store, equipmentID, employeeID, qty int64, at time.Time) (*Delivery, error) {
	rec, err := s.LoadStock(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &Record{EquipmentID: equipmentID}
	}
	if rec.QuantityOnHand < qty {
		return nil, fmt.Errorf("have %d, want %d: %w", rec.QuantityOnHand, qty, ErrInsufficientStock)
	}
	rec.QuantityOnHand -= qty
	if err := s.SaveStock(ctx, *rec); err != nil {
		return nil, err
	}
	d := Delivery{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		EmployeeID:  employeeID,
		Quantity:    qty,
		DeliveredAt: at,
		Status:      StatusActive,
	}
	if err := s.AppendDelivery(ctx, d); err != nil {
		return nil, err
	}
	return &d, nil
}

func applyReversal(ctx context.Context, s Store, deliveryID string) error {
	d, err := s.GetDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}
	if d == nil || d.Status != StatusActive {
		return fmt.Errorf("delivery %s: %w", deliveryID, ErrNotFound)
	}
	rec, err := s.LoadStock(ctx, d.EquipmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &Record{EquipmentID: d.EquipmentID}
	}
	rec.QuantityOnHand += d.Quantity
	if err := s.SaveStock(ctx, *rec); err != nil {
		return err
	}
	return s.RemoveDelivery(ctx, deliveryID)
}
