package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/models"
	"github.com/mamadbah2/butcher/internal/domain/yield"
)

// InventoryService is the part of the core used by the inventory endpoints.
type InventoryService interface {
	Catalog(animal models.AnimalType) ([]models.CutDefinition, error)
	AllocateBatch(animal models.AnimalType, weight float64) (models.AnimalBatch, error)
	RegisterBatch(ctx context.Context, animal models.AnimalType, weight float64) (models.AnimalBatch, error)
	ListBatches(ctx context.Context, filter models.AnimalType) ([]models.AnimalBatch, error)
	AvailableCuts(ctx context.Context) ([]models.AvailableCut, error)
}

// InventoryHandler serves catalog, batch and stock endpoints.
type InventoryHandler struct {
	svc    InventoryService
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc InventoryService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type batchRequest struct {
	Type   models.AnimalType `json:"type" binding:"required,animaltype"`
	Weight float64           `json:"weight" binding:"required,gt=0"`
}

// Catalog returns the yield formula of the animal type in the path.
func (h *InventoryHandler) Catalog(c *gin.Context) {
	animal, err := yield.Parse(c.Param("type"))
	if err != nil {
		writeError(c, h.logger, errs.Invalid("type", errs.ErrUnknownAnimalType, "%q", c.Param("type")))
		return
	}

	cuts, err := h.svc.Catalog(animal)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": animal, "cuts": cuts})
}

// CreateBatch registers an animal and stores its cuts.
func (h *InventoryHandler) CreateBatch(c *gin.Context) {
	animal, weight, ok := h.bindBatch(c)
	if !ok {
		return
	}

	batch, err := h.svc.RegisterBatch(c.Request.Context(), animal, weight)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

// PreviewBatch computes the cuts of an animal without storing them.
func (h *InventoryHandler) PreviewBatch(c *gin.Context) {
	animal, weight, ok := h.bindBatch(c)
	if !ok {
		return
	}

	batch, err := h.svc.AllocateBatch(animal, weight)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// ListBatches returns stored batches, optionally filtered with ?type=.
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	var filter models.AnimalType
	if raw := c.Query("type"); raw != "" && raw != "ALL" {
		animal, err := yield.Parse(raw)
		if err != nil {
			writeError(c, h.logger, errs.Invalid("type", errs.ErrUnknownAnimalType, "%q", raw))
			return
		}
		filter = animal
	}

	batches, err := h.svc.ListBatches(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

// AvailableCuts lists cuts that can still be sold.
func (h *InventoryHandler) AvailableCuts(c *gin.Context) {
	cuts, err := h.svc.AvailableCuts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if cuts == nil {
		cuts = []models.AvailableCut{}
	}
	c.JSON(http.StatusOK, cuts)
}

func (h *InventoryHandler) bindBatch(c *gin.Context) (models.AnimalType, float64, bool) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return "", 0, false
	}

	animal, err := yield.Parse(string(req.Type))
	if err != nil {
		writeError(c, h.logger, errs.Invalid("type", errs.ErrUnknownAnimalType, "%q", req.Type))
		return "", 0, false
	}
	return animal, req.Weight, true
}
