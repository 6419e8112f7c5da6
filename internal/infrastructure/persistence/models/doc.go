// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - customfield.go: Field definition and EAV value models
// - client.go / contract.go: Client and contract models
// - catalog.go / scope.go: Service catalog and service scope models
// - hardware.go: Hardware asset and client assignment models
// - finance.go: Financial transaction model
// - team.go / metrics.go: Team assignment, SLA metric and ticket summary models
// - identity.go: User model
package models
