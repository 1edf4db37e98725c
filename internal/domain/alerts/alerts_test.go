package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name     string
		qty      int64
		minStock int64
		want     StockLevel
	}{
		{"zero is out of stock", 0, 0, StockOut},
		{"one is critical", 1, 0, StockCritical},
		{"five is critical", 5, 0, StockCritical},
		{"six is low", 6, 0, StockLow},
		{"ten is low", 10, 0, StockLow},
		{"eleven is normal", 11, 0, StockNormal},
		{"at minimum stays critical band", 5, 5, StockCritical},
		{"above critical band but under minimum is low", 15, 20, StockLow},
		{"above minimum is normal", 21, 20, StockNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq := equipment.Equipment{ID: 1, Name: "Goggles", MinStock: tc.minStock}
			rec := stock.Record{EquipmentID: 1, QuantityOnHand: tc.qty}
			assert.Equal(t, tc.want, ClassifyStock(eq, rec))
		})
	}
}

func TestClassifyStockAfterRestock(t *testing.T) {
	eq := equipment.Equipment{ID: 1, Name: "Goggles", MinStock: 5}

	assert.Equal(t, StockCritical, ClassifyStock(eq, stock.Record{QuantityOnHand: 5}))
	// one unit credited back moves it out of the critical band
	assert.Equal(t, StockLow, ClassifyStock(eq, stock.Record{QuantityOnHand: 6}))
}

func TestClassifyCertification(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	days := func(n int) *time.Time {
		d := asOf.AddDate(0, 0, n)
		return &d
	}

	cases := []struct {
		name    string
		expires *time.Time
		want    CertStatus
	}{
		{"no expiry", nil, CertNotApplicable},
		{"expired yesterday", days(-1), CertExpired},
		{"expires today", days(0), CertExpiringSoon},
		{"expires in ten days", days(10), CertExpiringSoon},
		{"expires exactly at window edge", days(30), CertExpiringSoon},
		{"expires in forty days", days(40), CertValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq := equipment.Equipment{ID: 1, Name: "Gloves", CACode: "12345", CAExpiresAt: tc.expires}
			assert.Equal(t, tc.want, ClassifyCertification(eq, asOf, DefaultExpiryWindow))
		})
	}
}

func TestSummarizeOrdering(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eqs := []equipment.Equipment{
		{ID: 1, Name: "X Helmet", Active: true},
		{ID: 2, Name: "Y Vest", MinStock: 5, Active: true},
		{ID: 3, Name: "A Boots", Active: true},
	}
	recs := []stock.Record{
		{EquipmentID: 1, QuantityOnHand: 0},
		{EquipmentID: 2, QuantityOnHand: 3},
		{EquipmentID: 3, QuantityOnHand: 8},
	}

	als := Summarize(eqs, recs, asOf, DefaultExpiryWindow)
	require.Len(t, als, 3)

	// out of stock outranks critical, which outranks low
	assert.Equal(t, KindOutOfStock, als[0].Kind)
	assert.EqualValues(t, 1, als[0].EquipmentID)
	assert.Equal(t, KindCriticalStock, als[1].Kind)
	assert.EqualValues(t, 2, als[1].EquipmentID)
	assert.Equal(t, KindLowStock, als[2].Kind)
	assert.EqualValues(t, 3, als[2].EquipmentID)
}

func TestSummarizeTiesBrokenByName(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eqs := []equipment.Equipment{
		{ID: 1, Name: "Zeta", Active: true},
		{ID: 2, Name: "Alpha", Active: true},
	}
	recs := []stock.Record{
		{EquipmentID: 1, QuantityOnHand: 0},
		{EquipmentID: 2, QuantityOnHand: 0},
	}

	als := Summarize(eqs, recs, asOf, DefaultExpiryWindow)
	require.Len(t, als, 2)
	assert.Equal(t, "Alpha", als[0].EquipmentName)
	assert.Equal(t, "Zeta", als[1].EquipmentName)
}

func TestSummarizeBothAxes(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expired := asOf.AddDate(0, 0, -10)

	eqs := []equipment.Equipment{
		{ID: 1, Name: "Mask", CACode: "987", CAExpiresAt: &expired, Active: true},
	}
	recs := []stock.Record{{EquipmentID: 1, QuantityOnHand: 2}}

	als := Summarize(eqs, recs, asOf, DefaultExpiryWindow)
	require.Len(t, als, 2)

	kinds := []Kind{als[0].Kind, als[1].Kind}
	assert.Contains(t, kinds, KindCriticalStock)
	assert.Contains(t, kinds, KindCAExpired)
}

func TestSummarizeSkipsHealthyAndInactive(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eqs := []equipment.Equipment{
		{ID: 1, Name: "Fine", Active: true},
		{ID: 2, Name: "Retired", Active: false},
	}
	recs := []stock.Record{
		{EquipmentID: 1, QuantityOnHand: 50},
		{EquipmentID: 2, QuantityOnHand: 0},
	}

	als := Summarize(eqs, recs, asOf, DefaultExpiryWindow)
	assert.Empty(t, als)
}

func TestSummarizeUnregisteredEquipmentIsOutOfStock(t *testing.T) {
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eqs := []equipment.Equipment{{ID: 7, Name: "New Item", Active: true}}

	als := Summarize(eqs, nil, asOf, DefaultExpiryWindow)
	require.Len(t, als, 1)
	assert.Equal(t, KindOutOfStock, als[0].Kind)
}
