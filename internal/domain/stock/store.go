package stock

import "context"

// Store is the persistence surface the engine writes through. Lookups return
// (nil, nil) when the row does not exist.
type Store interface {
	LoadStock(ctx context.Context, equipmentID int64) (*Record, error)
	SaveStock(ctx context.Context, rec Record) error
	AppendDelivery(ctx context.Context, d Delivery) error
	// RemoveDelivery flips an active delivery to reversed.
	RemoveDelivery(ctx context.Context, id string) error
	GetDelivery(ctx context.Context, id string) (*Delivery, error)

	ListStock(ctx context.Context) ([]Record, error)
	// ListDeliveries filters by equipment when equipmentID != 0.
	ListDeliveries(ctx context.Context, equipmentID int64) ([]Delivery, error)
}

// TxRunner is implemented by stores that can group the writes of one engine
// operation into a single transaction. fn receives a Store bound to that
// transaction; returning an error rolls everything back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(Store) error) error
}
