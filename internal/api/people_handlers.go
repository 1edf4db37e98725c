package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type employeeRequest struct {
	Name       string     `json:"name" binding:"required"`
	CPF        string     `json:"cpf"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	HiredAt    *time.Time `json:"hired_at"`
}

func (a *API) createEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := a.employees.Create(c.Request.Context(), req.Name, req.CPF, req.Position, req.Department, req.HiredAt)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (a *API) listEmployees(c *gin.Context) {
	onlyActive := c.Query("all") == ""
	es, err := a.employees.List(c.Request.Context(), onlyActive)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, es)
}

func (a *API) getEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := a.employees.GetByID(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (a *API) updateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := a.employees.Update(c.Request.Context(), id, req.Name, req.CPF, req.Position, req.Department)
	if err != nil {
		a.fail(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// deactivateEmployee soft-deletes: delivery history keeps referencing the row.
func (a *API) deactivateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := a.employees.SetActive(c.Request.Context(), id, false)
	if err != nil {
		a.fail(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type trainingRequest struct {
	EmployeeID  int64      `json:"employee_id" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	CompletedAt time.Time  `json:"completed_at" binding:"required"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (a *API) createTraining(c *gin.Context) {
	var req trainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := a.trainings.Create(c.Request.Context(), req.EmployeeID, req.Name, req.CompletedAt, req.ExpiresAt)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (a *API) listTrainings(c *gin.Context) {
	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}
	ts, err := a.trainings.List(c.Request.Context(), employeeID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (a *API) deleteTraining(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.trainings.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type accidentRequest struct {
	EmployeeID  int64     `json:"employee_id" binding:"required"`
	OccurredAt  time.Time `json:"occurred_at" binding:"required"`
	DaysLost    int64     `json:"days_lost"`
	CID         string    `json:"cid"`
	Description string    `json:"description"`
}

func (a *API) createAccident(c *gin.Context) {
	var req accidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DaysLost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days_lost must be >= 0"})
		return
	}
	acc, err := a.accidents.Create(c.Request.Context(), req.EmployeeID, req.OccurredAt, req.DaysLost, req.CID, req.Description)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

func (a *API) listAccidents(c *gin.Context) {
	employeeID, ok := queryEmployeeID(c)
	if !ok {
		return
	}
	as, err := a.accidents.List(c.Request.Context(), employeeID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, as)
}

func (a *API) deleteAccident(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.accidents.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryEmployeeID(c *gin.Context) (int64, bool) {
	q := c.Query("employee_id")
	if q == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(q, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id"})
		return 0, false
	}
	return id, true
}
