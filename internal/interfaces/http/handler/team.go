package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/application/team"
)

// TeamHandler handles team assignment HTTP requests
type TeamHandler struct {
	BaseHandler
	assignmentService *team.AssignmentService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(assignmentService *team.AssignmentService) *TeamHandler {
	return &TeamHandler{
		assignmentService: assignmentService,
	}
}

// Assign opens a team assignment linking a user to a client
func (h *TeamHandler) Assign(c *gin.Context) {
	var req team.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.assignmentService.Assign(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// End closes an open team assignment
func (h *TeamHandler) End(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}

	// Body is optional; an absent ended_at defaults to now
	var req team.EndAssignmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	resp, err := h.assignmentService.End(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByID returns one assignment by ID
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}

	resp, err := h.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByClient returns the team serving one client
func (h *TeamHandler) ListByClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}
	activeOnly := c.Query("active_only") == "true"

	assignments, err := h.assignmentService.ListByClient(c.Request.Context(), clientID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// ListByUser returns the clients one user serves
func (h *TeamHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	activeOnly := c.Query("active_only") == "true"

	assignments, err := h.assignmentService.ListByUser(c.Request.Context(), userID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// Delete removes an assignment record
func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID")
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
