package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
	"github.com/lucasbertoncelli/sst2-sub000/internal/infra/metrics"
)

type quantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (a *API) registerStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.engine.Register(c.Request.Context(), id, req.Quantity); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (a *API) receiveStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.engine.Receive(c.Request.Context(), id, req.Quantity); err != nil {
		a.fail(c, err)
		return
	}
	qty, err := a.engine.AvailableQuantity(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment_id": id, "quantity_on_hand": qty})
}

// availability is advisory: the engine re-validates on delivery, so a positive
// answer here can be stale by the time the form is submitted.
func (a *API) availability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	want := int64(1)
	if q := c.Query("quantity"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
			return
		}
		want = n
	}
	avail, err := a.engine.AvailableQuantity(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	okQty, err := a.engine.IsAvailable(c.Request.Context(), id, want)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"equipment_id":     id,
		"quantity_on_hand": avail,
		"available":        okQty,
	})
}

func (a *API) listStock(c *gin.Context) {
	recs, err := a.store.ListStock(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (a *API) checkConsistency(c *gin.Context) {
	if err := a.engine.CheckConsistency(c.Request.Context()); err != nil {
		c.JSON(http.StatusConflict, gin.H{"consistent": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consistent": true})
}

type deliveryRequest struct {
	EquipmentID int64 `json:"equipment_id" binding:"required"`
	EmployeeID  int64 `json:"employee_id" binding:"required"`
	Quantity    int64 `json:"quantity"`
}

func (a *API) createDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	d, err := a.engine.RecordDelivery(c.Request.Context(), req.EquipmentID, req.EmployeeID, req.Quantity)
	if err != nil {
		metrics.DeliveryErrorsTotal.WithLabelValues(metrics.Reason(err)).Inc()
		a.fail(c, err)
		return
	}
	metrics.DeliveriesTotal.Inc()
	a.log.Info("delivery recorded", "delivery_id", d.ID, "equipment_id", d.EquipmentID, "qty", d.Quantity)
	c.JSON(http.StatusCreated, d)
}

func (a *API) createBulkDelivery(c *gin.Context) {
	var items []stock.DeliveryRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty batch"})
		return
	}
	ds, err := a.engine.BulkRecordDelivery(c.Request.Context(), items)
	if err != nil {
		metrics.DeliveryErrorsTotal.WithLabelValues(metrics.Reason(err)).Inc()
		a.fail(c, err)
		return
	}
	metrics.DeliveriesTotal.Add(float64(len(ds)))
	a.log.Info("bulk delivery recorded", "items", len(ds))
	c.JSON(http.StatusCreated, ds)
}

func (a *API) listDeliveries(c *gin.Context) {
	var equipmentID int64
	if q := c.Query("equipment_id"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment_id"})
			return
		}
		equipmentID = n
	}
	ds, err := a.store.ListDeliveries(c.Request.Context(), equipmentID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (a *API) reverseDelivery(c *gin.Context) {
	id := c.Param("id")
	if err := a.engine.ReverseDelivery(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	a.log.Info("delivery reversed", "delivery_id", id)
	c.Status(http.StatusNoContent)
}

type editDeliveryRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
	Quantity   int64 `json:"quantity" binding:"required"`
}

func (a *API) editDelivery(c *gin.Context) {
	id := c.Param("id")
	var req editDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := a.engine.EditDelivery(c.Request.Context(), id, req.EmployeeID, req.Quantity)
	if err != nil {
		metrics.DeliveryErrorsTotal.WithLabelValues(metrics.Reason(err)).Inc()
		a.fail(c, err)
		return
	}
	a.log.Info("delivery edited", "old_id", id, "new_id", d.ID)
	c.JSON(http.StatusOK, d)
}
