package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/application/scope"
)

// ScopeHandler handles service scope HTTP requests
type ScopeHandler struct {
	BaseHandler
	scopeService *scope.ScopeService
}

// NewScopeHandler creates a new scope handler
func NewScopeHandler(scopeService *scope.ScopeService) *ScopeHandler {
	return &ScopeHandler{
		scopeService: scopeService,
	}
}

// Create instantiates a service under a contract with template-validated details
func (h *ScopeHandler) Create(c *gin.Context) {
	var req scope.CreateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.scopeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one service scope by ID
func (h *ScopeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	resp, err := h.scopeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a paginated, filterable list of service scopes
func (h *ScopeHandler) List(c *gin.Context) {
	var filter scope.ScopeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.scopeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByContract returns every scope under one contract
func (h *ScopeHandler) ListByContract(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	scopes, err := h.scopeService.ListByContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scopes)
}

// Update patches a scope's details and delivery dates
func (h *ScopeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	var req scope.UpdateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.scopeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate moves a pending scope into delivery
func (h *ScopeHandler) Activate(c *gin.Context) {
	h.transition(c, h.scopeService.Activate, "Scope activated")
}

// Complete marks a scope's delivery as finished
func (h *ScopeHandler) Complete(c *gin.Context) {
	h.transition(c, h.scopeService.Complete, "Scope completed")
}

// Cancel cancels a pending or active scope
func (h *ScopeHandler) Cancel(c *gin.Context) {
	h.transition(c, h.scopeService.Cancel, "Scope cancelled")
}

// Delete removes a pending or cancelled scope
func (h *ScopeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	if err := h.scopeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ScopeHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": message})
}
