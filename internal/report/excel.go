// Package report renders downloadable spreadsheets for the stock ledger and
// the delivery log.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/alerts"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/employees"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
)

// StockXLSX renders one row per equipment with its current ledger state and
// derived health classifications.
func StockXLSX(eqs []equipment.Equipment, recs []stock.Record, asOf time.Time, window time.Duration) (*bytes.Buffer, error) {
	byID := make(map[int64]stock.Record, len(recs))
	for _, r := range recs {
		byID[r.EquipmentID] = r
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"equipment_id",
		"equipment_name",
		"ca_code",
		"ca_expires_at",
		"min_stock",
		"qty_on_hand",
		"stock_level",
		"ca_status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, eq := range eqs {
		rec := byID[eq.ID]
		expires := ""
		if eq.CAExpiresAt != nil {
			expires = eq.CAExpiresAt.Format("2006-01-02")
		}
		excelRow := []interface{}{
			eq.ID,
			eq.Name,
			eq.CACode,
			expires,
			eq.MinStock,
			rec.QuantityOnHand,
			string(alerts.ClassifyStock(eq, rec)),
			string(alerts.ClassifyCertification(eq, asOf, window)),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// DeliveriesXLSX renders the delivery log with equipment and employee names
// resolved for the reader.
func DeliveriesXLSX(ds []stock.Delivery, eqs []equipment.Equipment, emps []employees.Employee) (*bytes.Buffer, error) {
	eqNames := make(map[int64]string, len(eqs))
	for _, eq := range eqs {
		eqNames[eq.ID] = eq.Name
	}
	empNames := make(map[int64]string, len(emps))
	for _, e := range emps {
		empNames[e.ID] = e.Name
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"delivery_id",
		"equipment_id",
		"equipment_name",
		"employee_id",
		"employee_name",
		"qty",
		"delivered_at",
		"status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, d := range ds {
		eqName := eqNames[d.EquipmentID]
		if eqName == "" {
			eqName = fmt.Sprintf("ID:%d", d.EquipmentID)
		}
		empName := empNames[d.EmployeeID]
		if empName == "" {
			empName = fmt.Sprintf("ID:%d", d.EmployeeID)
		}
		excelRow := []interface{}{
			d.ID,
			d.EquipmentID,
			eqName,
			d.EmployeeID,
			empName,
			d.Quantity,
			d.DeliveredAt.Format("2006-01-02 15:04:05"),
			string(d.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
