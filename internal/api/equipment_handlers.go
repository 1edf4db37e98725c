package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type equipmentRequest struct {
	Name        string     `json:"name" binding:"required"`
	CACode      string     `json:"ca_code"`
	CAExpiresAt *time.Time `json:"ca_expires_at"`
	MinStock    int64      `json:"min_stock"`
}

func (a *API) createEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MinStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_stock must be >= 0"})
		return
	}
	eq, err := a.equipment.Create(c.Request.Context(), req.Name, req.CACode, req.CAExpiresAt, req.MinStock)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, eq)
}

func (a *API) listEquipment(c *gin.Context) {
	onlyActive := c.Query("all") == ""
	eqs, err := a.equipment.List(c.Request.Context(), onlyActive)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, eqs)
}

func (a *API) getEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	eq, err := a.equipment.GetByID(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	if eq == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		return
	}
	c.JSON(http.StatusOK, eq)
}

func (a *API) updateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eq, err := a.equipment.Update(c.Request.Context(), id, req.Name, req.CACode, req.CAExpiresAt, req.MinStock)
	if err != nil {
		a.fail(c, err)
		return
	}
	if eq == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		return
	}
	c.JSON(http.StatusOK, eq)
}

// deleteEquipment removes a catalog entry. The engine guard refuses the
// removal while the ledger still references the equipment.
func (a *API) deleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.engine.CheckRemoval(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.equipment.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
