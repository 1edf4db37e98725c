// Package api is the HTTP surface of the application. Handlers translate
// requests into engine/repo calls and map domain errors onto status codes;
// no business rule lives here.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/accidents"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/employees"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/equipment"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/stock"
	"github.com/lucasbertoncelli/sst2-sub000/internal/domain/trainings"
)

type API struct {
	log    *slog.Logger
	engine *stock.Engine
	store  stock.Store

	equipment *equipment.Repo
	employees *employees.Repo
	trainings *trainings.Repo
	accidents *accidents.Repo

	expiryWindow time.Duration
}

func New(
	log *slog.Logger,
	engine *stock.Engine,
	store stock.Store,
	equipmentRepo *equipment.Repo,
	employeesRepo *employees.Repo,
	trainingsRepo *trainings.Repo,
	accidentsRepo *accidents.Repo,
	expiryWindow time.Duration,
) *API {
	return &API{
		log:          log,
		engine:       engine,
		store:        store,
		equipment:    equipmentRepo,
		employees:    employeesRepo,
		trainings:    trainingsRepo,
		accidents:    accidentsRepo,
		expiryWindow: expiryWindow,
	}
}

// Router wires the gin engine with all routes and middleware.
func (a *API) Router(env string, exposeMetrics bool) *gin.Engine {
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(a.logMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if exposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")

	api.POST("/equipment", a.createEquipment)
	api.GET("/equipment", a.listEquipment)
	api.GET("/equipment/:id", a.getEquipment)
	api.PUT("/equipment/:id", a.updateEquipment)
	api.DELETE("/equipment/:id", a.deleteEquipment)
	api.POST("/equipment/:id/register", a.registerStock)
	api.POST("/equipment/:id/receive", a.receiveStock)
	api.GET("/equipment/:id/availability", a.availability)

	api.GET("/stock", a.listStock)
	api.GET("/stock/consistency", a.checkConsistency)

	api.POST("/deliveries", a.createDelivery)
	api.POST("/deliveries/bulk", a.createBulkDelivery)
	api.GET("/deliveries", a.listDeliveries)
	api.POST("/deliveries/:id/reverse", a.reverseDelivery)
	api.PUT("/deliveries/:id", a.editDelivery)

	api.GET("/alerts", a.listAlerts)
	api.GET("/dashboard", a.dashboard)

	api.GET("/reports/stock.xlsx", a.stockReport)
	api.GET("/reports/deliveries.xlsx", a.deliveriesReport)

	api.POST("/employees", a.createEmployee)
	api.GET("/employees", a.listEmployees)
	api.GET("/employees/:id", a.getEmployee)
	api.PUT("/employees/:id", a.updateEmployee)
	api.DELETE("/employees/:id", a.deactivateEmployee)

	api.POST("/trainings", a.createTraining)
	api.GET("/trainings", a.listTrainings)
	api.DELETE("/trainings/:id", a.deleteTraining)

	api.POST("/accidents", a.createAccident)
	api.GET("/accidents", a.listAccidents)
	api.DELETE("/accidents/:id", a.deleteAccident)

	return r
}

func (a *API) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// fail maps a domain error onto a response. Every engine error is a normal
// business outcome, so nothing here aborts the process.
func (a *API) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, stock.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, stock.ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, stock.ErrStockInUse),
		errors.Is(err, stock.ErrAlreadyRegistered):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		a.log.Error("request failed", "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
