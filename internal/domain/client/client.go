package client

import (
	"regexp"
	"strings"

	"github.com/mssp/backend/internal/domain/shared"
)

// ClientStatus represents the lifecycle state of a client
type ClientStatus string

const (
	StatusProspect ClientStatus = "prospect"
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
	StatusArchived ClientStatus = "archived"
)

// IsValid checks if the status is valid
func (s ClientStatus) IsValid() bool {
	switch s {
	case StatusProspect, StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// ClientSource represents how the client was acquired
type ClientSource string

const (
	SourceReferral  ClientSource = "referral"
	SourceDirect    ClientSource = "direct"
	SourceMarketing ClientSource = "marketing"
	SourceOther     ClientSource = "other"
)

// IsValid checks if the source is valid
func (s ClientSource) IsValid() bool {
	switch s {
	case SourceReferral, SourceDirect, SourceMarketing, SourceOther:
		return true
	}
	return false
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-+().]{3,50}$`)
)

// Client is a managed-services customer organization. New clients start as
// prospects; onboarding activates them, offboarding runs through inactive
// to archived.
type Client struct {
	shared.BaseAggregateRoot
	CompanyName string
	ShortName   string
	Industry    string
	CompanySize string
	Status      ClientStatus
	Source      ClientSource
	ContactName string
	Email       string
	Phone       string
	Address     string
	Website     string
	Notes       string
}

// NewClient creates a new client in prospect status
func NewClient(companyName string, source ClientSource) (*Client, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if source == "" {
		source = SourceOther
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown client source: "+string(source))
	}

	c := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
		Status:            StatusProspect,
		Source:            source,
	}
	c.AddDomainEvent(NewClientCreatedEvent(c))
	return c, nil
}

// Update changes the company profile fields
func (c *Client) Update(companyName, shortName, industry, companySize string) error {
	if strings.TrimSpace(companyName) == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name is required")
	}
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	c.CompanyName = companyName
	c.ShortName = shortName
	c.Industry = industry
	c.CompanySize = companySize
	c.IncrementVersion()
	return nil
}

// SetContact sets the primary contact details
func (c *Client) SetContact(contactName, email, phone string) error {
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone format")
	}
	c.ContactName = contactName
	c.Email = email
	c.Phone = phone
	c.IncrementVersion()
	return nil
}

// SetAddress sets the postal address
func (c *Client) SetAddress(address string) {
	c.Address = address
	c.IncrementVersion()
}

// SetWebsite sets the company website
func (c *Client) SetWebsite(website string) error {
	if website != "" && !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		return shared.NewDomainError("INVALID_WEBSITE", "Website must be an http(s) URL")
	}
	c.Website = website
	c.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.IncrementVersion()
}

// Activate moves a prospect or inactive client into active service
func (c *Client) Activate() error {
	if c.Status != StatusProspect && c.Status != StatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Only prospect or inactive clients can be activated")
	}
	c.Status = StatusActive
	c.IncrementVersion()
	c.AddDomainEvent(NewClientStatusChangedEvent(c, StatusActive))
	return nil
}

// Deactivate suspends an active client
func (c *Client) Deactivate() error {
	if c.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active clients can be deactivated")
	}
	c.Status = StatusInactive
	c.IncrementVersion()
	c.AddDomainEvent(NewClientStatusChangedEvent(c, StatusInactive))
	return nil
}

// Archive retires a client record. Archived is terminal.
func (c *Client) Archive() error {
	if c.Status == StatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Client is already archived")
	}
	if c.Status == StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Active clients must be deactivated before archiving")
	}
	c.Status = StatusArchived
	c.IncrementVersion()
	c.AddDomainEvent(NewClientStatusChangedEvent(c, StatusArchived))
	return nil
}

// IsActive reports whether the client is in active service
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}
