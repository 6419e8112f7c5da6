package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/client"
)

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	CompanyName  string                 `json:"company_name" binding:"required,max=200"`
	ShortName    string                 `json:"short_name" binding:"omitempty,max=50"`
	Industry     string                 `json:"industry" binding:"omitempty,max=100"`
	CompanySize  string                 `json:"company_size" binding:"omitempty,max=50"`
	Source       string                 `json:"source"`
	ContactName  string                 `json:"contact_name" binding:"omitempty,max=200"`
	Email        string                 `json:"email" binding:"omitempty,email"`
	Phone        string                 `json:"phone" binding:"omitempty,max=50"`
	Address      string                 `json:"address" binding:"omitempty,max=500"`
	Website      string                 `json:"website" binding:"omitempty,max=500"`
	Notes        string                 `json:"notes"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// UpdateClientRequest is the payload for updating a client; nil fields are
// left unchanged
type UpdateClientRequest struct {
	CompanyName  *string                `json:"company_name" binding:"omitempty,max=200"`
	ShortName    *string                `json:"short_name" binding:"omitempty,max=50"`
	Industry     *string                `json:"industry" binding:"omitempty,max=100"`
	CompanySize  *string                `json:"company_size" binding:"omitempty,max=50"`
	Source       *string                `json:"source"`
	ContactName  *string                `json:"contact_name" binding:"omitempty,max=200"`
	Email        *string                `json:"email" binding:"omitempty,email"`
	Phone        *string                `json:"phone" binding:"omitempty,max=50"`
	Address      *string                `json:"address" binding:"omitempty,max=500"`
	Website      *string                `json:"website" binding:"omitempty,max=500"`
	Notes        *string                `json:"notes"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// ClientListFilter carries list query parameters
type ClientListFilter struct {
	Status   string `form:"status"`
	Source   string `form:"source"`
	Industry string `form:"industry"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ClientResponse is the response shape of a client
type ClientResponse struct {
	ID           uuid.UUID              `json:"id"`
	CompanyName  string                 `json:"company_name"`
	ShortName    string                 `json:"short_name,omitempty"`
	Industry     string                 `json:"industry,omitempty"`
	CompanySize  string                 `json:"company_size,omitempty"`
	Status       string                 `json:"status"`
	Source       string                 `json:"source"`
	ContactName  string                 `json:"contact_name,omitempty"`
	Email        string                 `json:"email,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	Address      string                 `json:"address,omitempty"`
	Website      string                 `json:"website,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	CustomFields map[string]interface{} `json:"custom_fields"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ClientStatusCounts reports how many clients sit in each lifecycle state
type ClientStatusCounts struct {
	Prospect int64 `json:"prospect"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Archived int64 `json:"archived"`
	Total    int64 `json:"total"`
}

// ToClientResponse maps a domain client to its response shape
func ToClientResponse(c *client.Client, customFields map[string]interface{}) ClientResponse {
	if customFields == nil {
		customFields = map[string]interface{}{}
	}
	return ClientResponse{
		ID:           c.ID,
		CompanyName:  c.CompanyName,
		ShortName:    c.ShortName,
		Industry:     c.Industry,
		CompanySize:  c.CompanySize,
		Status:       string(c.Status),
		Source:       string(c.Source),
		ContactName:  c.ContactName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		Website:      c.Website,
		Notes:        c.Notes,
		CustomFields: customFields,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
