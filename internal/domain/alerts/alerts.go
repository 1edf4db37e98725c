// Package alerts derives stock-health and certification-health states from the
// catalog and the ledger. Everything here is recomputed on demand and never
// persisted, so there is no second copy of the truth to drift.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
)

type StockLevel string

const (
	StockOut      StockLevel = "out_of_stock"
	StockCritical StockLevel = "critical"
	StockLow      StockLevel = "low"
	StockNormal   StockLevel = "normal"
)

type CertStatus string

const (
	CertExpired       CertStatus = "expired"
	CertExpiringSoon  CertStatus = "expiring_soon"
	CertValid         CertStatus = "valid"
	CertNotApplicable CertStatus = "not_applicable"
)

const (
	criticalMax = 5
	lowMax      = 10

	// DefaultExpiryWindow is how far ahead a CA expiry counts as "soon".
	DefaultExpiryWindow = 30 * 24 * time.Hour
)

type Kind string

const (
	KindOutOfStock    Kind = "out_of_stock"
	KindCriticalStock Kind = "critical_stock"
	KindLowStock      Kind = "low_stock"
	KindCAExpired     Kind = "ca_expired"
	KindCAExpiring    Kind = "ca_expiring"
)

type Alert struct {
	EquipmentID   int64  `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	Kind          Kind   `json:"kind"`
	Message       string `json:"message"`
}

// ClassifyStock buckets the on-hand quantity. The fixed bands (<=5 critical,
// <=10 low) apply to every equipment; a per-equipment minimum additionally
// drags anything at or under it down to at least low.
func ClassifyStock(eq equipment.Equipment, rec stock.Record) StockLevel {
	qty := rec.QuantityOnHand
	switch {
	case qty == 0:
		return StockOut
	case qty <= criticalMax:
		return StockCritical
	case qty <= lowMax:
		return StockLow
	case eq.MinStock > 0 && qty <= eq.MinStock:
		return StockLow
	default:
		return StockNormal
	}
}

// ClassifyCertification evaluates the CA expiry as of a given instant. The
// expiring-soon window is inclusive on both ends.
func ClassifyCertification(eq equipment.Equipment, asOf time.Time, window time.Duration) CertStatus {
	if eq.CAExpiresAt == nil {
		return CertNotApplicable
	}
	exp := *eq.CAExpiresAt
	switch {
	case exp.Before(asOf):
		return CertExpired
	case !exp.After(asOf.Add(window)):
		return CertExpiringSoon
	default:
		return CertValid
	}
}

// Summarize produces one alert per failing axis per equipment, most severe
// first. Out-of-stock and expired CAs outrank critical/expiring, which outrank
// low stock; ties are broken by equipment name so the order is deterministic.
func Summarize(eqs []equipment.Equipment, recs []stock.Record, asOf time.Time, window time.Duration) []Alert {
	byID := make(map[int64]stock.Record, len(recs))
	for _, r := range recs {
		byID[r.EquipmentID] = r
	}

	var out []Alert
	for _, eq := range eqs {
		if !eq.Active {
			continue
		}
		rec := byID[eq.ID] // missing entry reads as zero stock

		switch ClassifyStock(eq, rec) {
		case StockOut:
			out = append(out, Alert{eq.ID, eq.Name, KindOutOfStock,
				fmt.Sprintf("%s is out of stock", eq.Name)})
		case StockCritical:
			out = append(out, Alert{eq.ID, eq.Name, KindCriticalStock,
				fmt.Sprintf("%s: %d left, stock is critical", eq.Name, rec.QuantityOnHand)})
		case StockLow:
			out = append(out, Alert{eq.ID, eq.Name, KindLowStock,
				fmt.Sprintf("%s: %d left, stock is low", eq.Name, rec.QuantityOnHand)})
		}

		switch ClassifyCertification(eq, asOf, window) {
		case CertExpired:
			out = append(out, Alert{eq.ID, eq.Name, KindCAExpired,
				fmt.Sprintf("%s: CA %s expired on %s", eq.Name, eq.CACode, eq.CAExpiresAt.Format("2006-01-02"))})
		case CertExpiringSoon:
			out = append(out, Alert{eq.ID, eq.Name, KindCAExpiring,
				fmt.Sprintf("%s: CA %s expires on %s", eq.Name, eq.CACode, eq.CAExpiresAt.Format("2006-01-02"))})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := severity(out[i].Kind), severity(out[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return out[i].EquipmentName < out[j].EquipmentName
	})
	return out
}

func severity(k Kind) int {
	switch k {
	case KindOutOfStock, KindCAExpired:
		return 0
	case KindCriticalStock, KindCAExpiring:
		return 1
	default:
		return 2
	}
}
