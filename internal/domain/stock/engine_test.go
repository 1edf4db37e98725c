package stock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
)

type fakeCatalog map[int64]equipment.Equipment

func (f fakeCatalog) GetByID(_ context.Context, id int64) (*equipment.Equipment, error) {
	if eq, ok := f[id]; ok {
		return &eq, nil
	}
	return nil, nil
}

func newTestEngine(t *testing.T, ids ...int64) (*Engine, *MemStore) {
	t.Helper()
	cat := fakeCatalog{}
	for _, id := range ids {
		cat[id] = equipment.Equipment{ID: id, Active: true}
	}
	store := NewMemStore()
	return NewEngine(store, cat), store
}

func TestRecordDelivery(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	d, err := e.RecordDelivery(ctx, 1, 42, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, StatusActive, d.Status)
	assert.EqualValues(t, 3, d.Quantity)

	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 7, qty)
}

func TestRecordDeliveryInsufficientStock(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	_, err := e.RecordDelivery(ctx, 1, 42, 3)
	require.NoError(t, err)

	_, err = e.RecordDelivery(ctx, 1, 42, 8)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// the failed delivery must leave no trace
	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 7, qty)
	require.NoError(t, e.CheckConsistency(ctx))
}

func TestRecordDeliveryValidation(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	_, err := e.RecordDelivery(ctx, 1, 42, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = e.RecordDelivery(ctx, 1, 42, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = e.RecordDelivery(ctx, 99, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReverseDelivery(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	d, err := e.RecordDelivery(ctx, 1, 42, 3)
	require.NoError(t, err)

	require.NoError(t, e.ReverseDelivery(ctx, d.ID))
	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, qty)

	// reversing again must not double-credit
	err = e.ReverseDelivery(ctx, d.ID)
	require.ErrorIs(t, err, ErrNotFound)
	qty, err = e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, qty)

	assert.ErrorIs(t, e.ReverseDelivery(ctx, "no-such-id"), ErrNotFound)
}

func TestEditDelivery(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	d, err := e.RecordDelivery(ctx, 1, 42, 3)
	require.NoError(t, err)

	nd, err := e.EditDelivery(ctx, d.ID, 43, 5)
	require.NoError(t, err)
	assert.NotEqual(t, d.ID, nd.ID)
	assert.EqualValues(t, 43, nd.EmployeeID)
	assert.EqualValues(t, 5, nd.Quantity)

	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, qty)

	old, err := store.GetDelivery(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReversed, old.Status)
}

func TestEditDeliveryRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 10))

	d, err := e.RecordDelivery(ctx, 1, 42, 3)
	require.NoError(t, err)

	// 12 > 10 available after the reversal, so the whole edit must fail and
	// the original delivery must stay active.
	_, err = e.EditDelivery(ctx, d.ID, 42, 12)
	require.ErrorIs(t, err, ErrInsufficientStock)

	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 7, qty)

	old, err := store.GetDelivery(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, StatusActive, old.Status)
	require.NoError(t, e.CheckConsistency(ctx))
}

func TestBulkRecordDelivery(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1, 2)
	require.NoError(t, e.Register(ctx, 1, 10))
	require.NoError(t, e.Register(ctx, 2, 4))

	ds, err := e.BulkRecordDelivery(ctx, []DeliveryRequest{
		{EquipmentID: 1, EmployeeID: 42, Quantity: 2},
		{EquipmentID: 2, EmployeeID: 42, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	qty, _ := e.AvailableQuantity(ctx, 1)
	assert.EqualValues(t, 8, qty)
	qty, _ = e.AvailableQuantity(ctx, 2)
	assert.EqualValues(t, 3, qty)
}

func TestBulkRecordDeliveryAllOrNothing(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1, 2)
	require.NoError(t, e.Register(ctx, 1, 10))
	require.NoError(t, e.Register(ctx, 2, 4))

	_, err := e.BulkRecordDelivery(ctx, []DeliveryRequest{
		{EquipmentID: 1, EmployeeID: 42, Quantity: 2},
		{EquipmentID: 2, EmployeeID: 42, Quantity: 999999},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "equipment 2")

	// neither line may have committed
	qty, _ := e.AvailableQuantity(ctx, 1)
	assert.EqualValues(t, 10, qty)
	qty, _ = e.AvailableQuantity(ctx, 2)
	assert.EqualValues(t, 4, qty)

	ds, err := e.store.ListDeliveries(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestRegisterAndReceive(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)

	require.NoError(t, e.Register(ctx, 1, 0))
	assert.ErrorIs(t, e.Register(ctx, 1, 5), ErrAlreadyRegistered)
	assert.ErrorIs(t, e.Register(ctx, 1, -1), ErrInvalidQuantity)

	require.NoError(t, e.Receive(ctx, 1, 6))
	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 6, qty)

	assert.ErrorIs(t, e.Receive(ctx, 1, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, e.Receive(ctx, 99, 1), ErrNotFound)
}

func TestAvailableQuantityUnregistered(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)

	// unregistered means zero stock, not an error
	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, qty)

	ok, err := e.IsAvailable(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 3))

	ok, err := e.IsAvailable(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.IsAvailable(ctx, 1, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	// qty below 1 is treated as the single-unit default
	ok, err = e.IsAvailable(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckRemoval(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1, 2)
	require.NoError(t, e.Register(ctx, 1, 10))
	require.NoError(t, e.Register(ctx, 2, 10))

	d, err := e.RecordDelivery(ctx, 1, 42, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, e.CheckRemoval(ctx, 1), ErrStockInUse)
	assert.NoError(t, e.CheckRemoval(ctx, 2))

	// history keeps blocking removal even after the delivery is reversed
	require.NoError(t, e.ReverseDelivery(ctx, d.ID))
	assert.ErrorIs(t, e.CheckRemoval(ctx, 1), ErrStockInUse)
}

func TestConcurrentDeliveriesNeverOversell(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Register(ctx, 1, 5))

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.RecordDelivery(ctx, 1, 42, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 5, succeeded)

	qty, err := e.AvailableQuantity(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, qty)
	require.NoError(t, e.CheckConsistency(ctx))
}
