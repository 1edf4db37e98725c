package stock

import (
	"context"
	"fmt"
)

// Replay rebuilds on-hand quantities from lifetime inbound totals and the
// delivery log. Reversed deliveries carry no weight: their effect was already
// undone in the ledger.
func Replay(received map[int64]int64, deliveries []Delivery) map[int64]int64 {
	out := make(map[int64]int64, len(received))
	for id, qty := range received {
		out[id] = qty
	}
	for _, d := range deliveries {
		if d.Status != StatusActive {
			continue
		}
		out[d.EquipmentID] -= d.Quantity
	}
	return out
}

// CheckConsistency replays the full delivery log and compares the result with
// the stored ledger. A mismatch means the ledger drifted from its audit trail.
func (e *Engine) CheckConsistency(ctx context.Context) error {
	recs, err := e.store.ListStock(ctx)
	if err != nil {
		return err
	}
	ds, err := e.store.ListDeliveries(ctx, 0)
	if err != nil {
		return err
	}

	received := make(map[int64]int64, len(recs))
	for _, r := range recs {
		received[r.EquipmentID] = r.ReceivedTotal
	}
	replayed := Replay(received, ds)

	for _, r := range recs {
		if got := replayed[r.EquipmentID]; got != r.QuantityOnHand {
			return fmt.Errorf("equipment %d: ledger has %d, replay says %d", r.EquipmentID, r.QuantityOnHand, got)
		}
	}
	return nil
}
