package repository

import (
	"context"

	"github.com/autoventa/autoventa-api/internal/models"
	"gorm.io/gorm"
)

// FinanceRepository defines the interface for company expense/income data access
type FinanceRepository interface {
	// Expense types
	FindExpenseTypes(ctx context.Context) ([]models.ExpenseType, error)
	CreateExpenseType(ctx context.Context, et *models.ExpenseType) error
	UpdateExpenseType(ctx context.Context, et *models.ExpenseType) error

	// Company expenses
	FindExpenseByID(ctx context.Context, id uint) (*models.CompanyExpense, error)
	CreateExpense(ctx context.Context, expense *models.CompanyExpense) error
	UpdateExpense(ctx context.Context, expense *models.CompanyExpense) error
	DeleteExpense(ctx context.Context, id uint) error
	ListExpenses(ctx context.Context, query *ListQuery) ([]models.CompanyExpense, int64, error)
	SumExpensesByMonth(ctx context.Context, branchID uint, months int) ([]models.MonthlyTotal, error)

	// Company incomes
	FindIncomeByID(ctx context.Context, id uint) (*models.CompanyIncome, error)
	CreateIncome(ctx context.Context, income *models.CompanyIncome) error
	UpdateIncome(ctx context.Context, income *models.CompanyIncome) error
	DeleteIncome(ctx context.Context, id uint) error
	ListIncomes(ctx context.Context, query *ListQuery) ([]models.CompanyIncome, int64, error)
	SumIncomesByMonth(ctx context.Context, branchID uint, months int) ([]models.MonthlyTotal, error)
}

type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) FindExpenseTypes(ctx context.Context) ([]models.ExpenseType, error) {
	var types []models.ExpenseType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *financeRepository) CreateExpenseType(ctx context.Context, et *models.ExpenseType) error {
	return r.db.WithContext(ctx).Create(et).Error
}

func (r *financeRepository) UpdateExpenseType(ctx context.Context, et *models.ExpenseType) error {
	return r.db.WithContext(ctx).Save(et).Error
}

func (r *financeRepository) FindExpenseByID(ctx context.Context, id uint) (*models.CompanyExpense, error) {
	var expense models.CompanyExpense
	err := r.db.WithContext(ctx).
		Preload("ExpenseType").
		First(&expense, id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *financeRepository) CreateExpense(ctx context.Context, expense *models.CompanyExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *financeRepository) UpdateExpense(ctx context.Context, expense *models.CompanyExpense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *financeRepository) DeleteExpense(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CompanyExpense{}, id).Error
}

func (r *financeRepository) ListExpenses(ctx context.Context, query *ListQuery) ([]models.CompanyExpense, int64, error) {
	var expenses []models.CompanyExpense
	var total int64

	db := r.db.WithContext(ctx).Model(&models.CompanyExpense{})

	if query.Filters["branch_id"] != "" {
		db = db.Where("company_expenses.branch_id = ?", query.Filters["branch_id"])
	}
	if query.Filters["expense_type_id"] != "" {
		db = db.Where("company_expenses.expense_type_id = ?", query.Filters["expense_type_id"])
	}
	if val, ok := query.Filters["start_date"]; ok && val != "" {
		db = db.Where("company_expenses.expense_date >= ?", val)
	}
	if val, ok := query.Filters["end_date"]; ok && val != "" {
		if len(val) == 10 {
			val += " 23:59:59"
		}
		db = db.Where("company_expenses.expense_date <= ?", val)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("COALESCE(company_expenses.description, '') ILIKE ?", search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("company_expenses.expense_date DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("ExpenseType").Find(&expenses).Error
	return expenses, total, err
}

func (r *financeRepository) SumExpensesByMonth(ctx context.Context, branchID uint, months int) ([]models.MonthlyTotal, error) {
	return r.sumByMonth(ctx, "company_expenses", "expense_date", branchID, months)
}

func (r *financeRepository) FindIncomeByID(ctx context.Context, id uint) (*models.CompanyIncome, error) {
	var income models.CompanyIncome
	err := r.db.WithContext(ctx).First(&income, id).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *financeRepository) CreateIncome(ctx context.Context, income *models.CompanyIncome) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *financeRepository) UpdateIncome(ctx context.Context, income *models.CompanyIncome) error {
	return r.db.WithContext(ctx).Save(income).Error
}

func (r *financeRepository) DeleteIncome(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CompanyIncome{}, id).Error
}

func (r *financeRepository) ListIncomes(ctx context.Context, query *ListQuery) ([]models.CompanyIncome, int64, error) {
	var incomes []models.CompanyIncome
	var total int64

	db := r.db.WithContext(ctx).Model(&models.CompanyIncome{})

	if query.Filters["branch_id"] != "" {
		db = db.Where("company_incomes.branch_id = ?", query.Filters["branch_id"])
	}
	if val, ok := query.Filters["start_date"]; ok && val != "" {
		db = db.Where("company_incomes.income_date >= ?", val)
	}
	if val, ok := query.Filters["end_date"]; ok && val != "" {
		if len(val) == 10 {
			val += " 23:59:59"
		}
		db = db.Where("company_incomes.income_date <= ?", val)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("company_incomes.concept ILIKE ? OR COALESCE(company_incomes.description, '') ILIKE ?",
			search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("company_incomes.income_date DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&incomes).Error
	return incomes, total, err
}

func (r *financeRepository) SumIncomesByMonth(ctx context.Context, branchID uint, months int) ([]models.MonthlyTotal, error) {
	return r.sumByMonth(ctx, "company_incomes", "income_date", branchID, months)
}

// sumByMonth groups amounts into YYYY-MM buckets for the last N months
func (r *financeRepository) sumByMonth(ctx context.Context, table, dateCol string, branchID uint, months int) ([]models.MonthlyTotal, error) {
	var totals []models.MonthlyTotal

	db := r.db.WithContext(ctx).Table(table).
		Select("TO_CHAR("+dateCol+", 'YYYY-MM') as month, COALESCE(SUM(amount), 0) as total").
		Where(dateCol+" >= date_trunc('month', NOW()) - ? * INTERVAL '1 month'", months)
	if branchID > 0 {
		db = db.Where("branch_id = ?", branchID)
	}

	err := db.Group("month").Order("month ASC").Scan(&totals).Error
	return totals, err
}
