package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/alerts"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
	"github.com/lucasbertoncelli/sst2-sub000/internal/infra/metrics"
	"github.com/lucasbertoncelli/sst2-sub000/internal/report"
)

func (a *API) listAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	eqs, err := a.equipment.List(ctx, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	recs, err := a.store.ListStock(ctx)
	if err != nil {
		a.fail(c, err)
		return
	}

	als := alerts.Summarize(eqs, recs, time.Now(), a.expiryWindow)

	counts := map[alerts.Kind]int{}
	for _, al := range als {
		counts[al.Kind]++
	}
	for _, kind := range []alerts.Kind{
		alerts.KindOutOfStock, alerts.KindCriticalStock, alerts.KindLowStock,
		alerts.KindCAExpired, alerts.KindCAExpiring,
	} {
		metrics.ActiveAlerts.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}

	c.JSON(http.StatusOK, als)
}

// dashboard feeds the static overview screens: entity counts plus the current
// alert totals, always recomputed from the ledger.
func (a *API) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	eqs, err := a.equipment.List(ctx, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	recs, err := a.store.ListStock(ctx)
	if err != nil {
		a.fail(c, err)
		return
	}
	emps, err := a.employees.List(ctx, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	ds, err := a.store.ListDeliveries(ctx, 0)
	if err != nil {
		a.fail(c, err)
		return
	}

	now := time.Now()
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	daysLost, err := a.accidents.TotalDaysLost(ctx, yearStart, now)
	if err != nil {
		a.fail(c, err)
		return
	}

	active := 0
	for _, d := range ds {
		if d.Status == stock.StatusActive {
			active++
		}
	}

	als := alerts.Summarize(eqs, recs, now, a.expiryWindow)

	c.JSON(http.StatusOK, gin.H{
		"equipment_count":   len(eqs),
		"employee_count":    len(emps),
		"deliveries_total":  len(ds),
		"deliveries_active": active,
		"alerts_total":      len(als),
		"days_lost_ytd":     daysLost,
	})
}

func (a *API) stockReport(c *gin.Context) {
	ctx := c.Request.Context()
	eqs, err := a.equipment.List(ctx, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	recs, err := a.store.ListStock(ctx)
	if err != nil {
		a.fail(c, err)
		return
	}
	buf, err := report.StockXLSX(eqs, recs, time.Now(), a.expiryWindow)
	if err != nil {
		a.fail(c, err)
		return
	}
	name := "stock_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (a *API) deliveriesReport(c *gin.Context) {
	ctx := c.Request.Context()
	ds, err := a.store.ListDeliveries(ctx, 0)
	if err != nil {
		a.fail(c, err)
		return
	}
	eqs, err := a.equipment.List(ctx, false)
	if err != nil {
		a.fail(c, err)
		return
	}
	emps, err := a.employees.List(ctx, false)
	if err != nil {
		a.fail(c, err)
		return
	}
	buf, err := report.DeliveriesXLSX(ds, eqs, emps)
	if err != nil {
		a.fail(c, err)
		return
	}
	name := "deliveries_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
