package models

import (
	"github.com/mssp/backend/internal/domain/client"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	AggregateModel
	CompanyName string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	ShortName   string              `gorm:"type:varchar(100)"`
	Industry    string              `gorm:"type:varchar(100)"`
	CompanySize string              `gorm:"type:varchar(50)"`
	Status      client.ClientStatus `gorm:"type:varchar(20);not null;default:'prospect';index"`
	Source      client.ClientSource `gorm:"type:varchar(20);not null;default:'other'"`
	ContactName string              `gorm:"type:varchar(100)"`
	Email       string              `gorm:"type:varchar(200);index"`
	Phone       string              `gorm:"type:varchar(50)"`
	Address     string              `gorm:"type:text"`
	Website     string              `gorm:"type:varchar(500)"`
	Notes       string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *client.Client {
	return &client.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CompanyName:       m.CompanyName,
		ShortName:         m.ShortName,
		Industry:          m.Industry,
		CompanySize:       m.CompanySize,
		Status:            m.Status,
		Source:            m.Source,
		ContactName:       m.ContactName,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		Website:           m.Website,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *client.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CompanyName = c.CompanyName
	m.ShortName = c.ShortName
	m.Industry = c.Industry
	m.CompanySize = c.CompanySize
	m.Status = c.Status
	m.Source = c.Source
	m.ContactName = c.ContactName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Website = c.Website
	m.Notes = c.Notes
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *client.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}
