package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/application/client"
)

// ClientHandler handles client management HTTP requests
type ClientHandler struct {
	BaseHandler
	clientService *client.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *client.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create registers a new client company
func (h *ClientHandler) Create(c *gin.Context) {
	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one client by ID
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	resp, err := h.clientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a paginated, filterable list of clients
func (h *ClientHandler) List(c *gin.Context) {
	var filter client.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update patches a client's profile
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req client.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate moves a client into the active state
func (h *ClientHandler) Activate(c *gin.Context) {
	h.transition(c, h.clientService.Activate, "Client activated")
}

// Deactivate moves a client into the inactive state
func (h *ClientHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.clientService.Deactivate, "Client deactivated")
}

// Archive moves a client into the archived state
func (h *ClientHandler) Archive(c *gin.Context) {
	h.transition(c, h.clientService.Archive, "Client archived")
}

// Delete removes a client and its dependent records
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// StatusCounts reports how many clients sit in each lifecycle state
func (h *ClientHandler) StatusCounts(c *gin.Context) {
	counts, err := h.clientService.StatusCounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

func (h *ClientHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": message})
}
