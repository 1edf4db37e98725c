package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	rec, err := m.LoadStock(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, m.SaveStock(ctx, Record{EquipmentID: 1, QuantityOnHand: 5, ReceivedTotal: 5}))
	rec, err = m.LoadStock(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.EqualValues(t, 5, rec.QuantityOnHand)

	d := Delivery{ID: "d1", EquipmentID: 1, EmployeeID: 2, Quantity: 1, Status: StatusActive}
	require.NoError(t, m.AppendDelivery(ctx, d))
	assert.Error(t, m.AppendDelivery(ctx, d), "duplicate id must be rejected")

	got, err := m.GetDelivery(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StatusActive, got.Status)

	require.NoError(t, m.RemoveDelivery(ctx, "d1"))
	got, err = m.GetDelivery(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, StatusReversed, got.Status)

	// removal is not repeatable
	assert.ErrorIs(t, m.RemoveDelivery(ctx, "d1"), ErrNotFound)
}

func TestMemStoreListDeliveriesPreservesOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.AppendDelivery(ctx, Delivery{ID: id, EquipmentID: 1, Quantity: 1, Status: StatusActive}))
	}
	require.NoError(t, m.AppendDelivery(ctx, Delivery{ID: "other", EquipmentID: 2, Quantity: 1, Status: StatusActive}))

	ds, err := m.ListDeliveries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "a", ds[0].ID)
	assert.Equal(t, "b", ds[1].ID)
	assert.Equal(t, "c", ds[2].ID)

	all, err := m.ListDeliveries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemStoreRunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	require.NoError(t, m.SaveStock(ctx, Record{EquipmentID: 1, QuantityOnHand: 5, ReceivedTotal: 5}))
	require.NoError(t, m.AppendDelivery(ctx, Delivery{ID: "keep", EquipmentID: 1, Quantity: 1, Status: StatusActive}))

	boom := errors.New("boom")
	err := m.RunInTx(ctx, func(s Store) error {
		if err := s.SaveStock(ctx, Record{EquipmentID: 1, QuantityOnHand: 0, ReceivedTotal: 5}); err != nil {
			return err
		}
		if err := s.AppendDelivery(ctx, Delivery{ID: "gone", EquipmentID: 1, Quantity: 5, Status: StatusActive}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rec, err := m.LoadStock(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, rec.QuantityOnHand)

	d, err := m.GetDelivery(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, d)

	ds, err := m.ListDeliveries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, ds, 1)
}

func TestMemStoreRunInTxCommits(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	err := m.RunInTx(ctx, func(s Store) error {
		if err := s.SaveStock(ctx, Record{EquipmentID: 1, QuantityOnHand: 2, ReceivedTotal: 2}); err != nil {
			return err
		}
		return s.AppendDelivery(ctx, Delivery{ID: "d", EquipmentID: 1, Quantity: 1, Status: StatusActive})
	})
	require.NoError(t, err)

	rec, err := m.LoadStock(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.EqualValues(t, 2, rec.QuantityOnHand)

	d, err := m.GetDelivery(ctx, "d")
	require.NoError(t, err)
	require.NotNil(t, d)
}
