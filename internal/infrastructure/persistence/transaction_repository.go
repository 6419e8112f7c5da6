package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/finance"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialTransaction, error) {
	var model models.FinancialTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txModels []models.FinancialTransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FinancialTransactionModel{}), filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txModels), nil
}

// FindByClient finds a client's transactions
func (r *GormTransactionRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.FinancialTransaction, error) {
	var txModels []models.FinancialTransactionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FinancialTransactionModel{}).
			Where("client_id = ?", clientID),
		filter,
	)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txModels), nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FinancialTransactionModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summarize totals completed transactions per type; a nil clientID totals
// the whole book, a zero time bound is open-ended
func (r *GormTransactionRepository) Summarize(ctx context.Context, clientID *uuid.UUID, from, to time.Time) (finance.Summary, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FinancialTransactionModel{}).
		Where("status = ?", finance.StatusCompleted)
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}
	if !from.IsZero() {
		query = query.Where("transaction_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("transaction_date <= ?", to)
	}

	type typeTotal struct {
		Type  finance.TransactionType
		Total decimal.Decimal
	}
	var rows []typeTotal
	if err := query.
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows).Error; err != nil {
		return finance.Summary{}, err
	}

	summary := finance.Summary{Revenue: decimal.Zero, Cost: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case finance.TypeRevenue:
			summary.Revenue = row.Total
		case finance.TypeCost:
			summary.Cost = row.Total
		}
	}
	return summary, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, t *finance.FinancialTransaction) error {
	model := models.FinancialTransactionModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FinancialTransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("transaction_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "contract_id":
			query = query.Where("contract_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

func toDomainTransactions(txModels []models.FinancialTransactionModel) []finance.FinancialTransaction {
	transactions := make([]finance.FinancialTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
