package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/application/hardware"
)

// HardwareHandler handles hardware asset HTTP requests
type HardwareHandler struct {
	BaseHandler
	assetService *hardware.AssetService
}

// NewHardwareHandler creates a new hardware handler
func NewHardwareHandler(assetService *hardware.AssetService) *HardwareHandler {
	return &HardwareHandler{
		assetService: assetService,
	}
}

// ReturnAssetRequest closes the asset's open assignment
type ReturnAssetRequest struct {
	ReturnedAt *time.Time `json:"returned_at"`
}

// Create registers a new hardware asset
func (h *HardwareHandler) Create(c *gin.Context) {
	var req hardware.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assetService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one asset by ID
func (h *HardwareHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	resp, err := h.assetService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a paginated, filterable list of assets
func (h *HardwareHandler) List(c *gin.Context) {
	var filter hardware.AssetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.assetService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update patches an asset's mutable details
func (h *HardwareHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	var req hardware.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assetService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Assign opens an assignment of the asset to a client
func (h *HardwareHandler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	var req hardware.AssignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assetService.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Return closes the asset's open assignment and puts it back in stock
func (h *HardwareHandler) Return(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	// Body is optional; an absent returned_at defaults to now
	var req ReturnAssetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	returnedAt := time.Now()
	if req.ReturnedAt != nil {
		returnedAt = *req.ReturnedAt
	}

	resp, err := h.assetService.Return(c.Request.Context(), id, returnedAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListAssignmentsByAsset returns the assignment history of one asset
func (h *HardwareHandler) ListAssignmentsByAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	assignments, err := h.assetService.ListAssignmentsByAsset(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// ListAssignmentsByClient returns the hardware assigned to one client
func (h *HardwareHandler) ListAssignmentsByClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	activeOnly := c.Query("active_only") == "true"

	assignments, err := h.assetService.ListAssignmentsByClient(c.Request.Context(), clientID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// StartMaintenance moves an in-stock asset into maintenance
func (h *HardwareHandler) StartMaintenance(c *gin.Context) {
	h.transition(c, h.assetService.StartMaintenance, "Asset moved to maintenance")
}

// FinishMaintenance returns a maintained asset to stock
func (h *HardwareHandler) FinishMaintenance(c *gin.Context) {
	h.transition(c, h.assetService.FinishMaintenance, "Asset returned to stock")
}

// Retire permanently removes an asset from circulation
func (h *HardwareHandler) Retire(c *gin.Context) {
	h.transition(c, h.assetService.Retire, "Asset retired")
}

func (h *HardwareHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid asset ID")
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": message})
}
