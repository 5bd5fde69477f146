package services

import (
	"context"
	"errors"
	"sort"

	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/internal/repository"
	"gorm.io/gorm"
)

// FinanceService manages company-level expenses and incomes
type FinanceService struct {
	repo repository.FinanceRepository
}

func NewFinanceService(repo repository.FinanceRepository) *FinanceService {
	return &FinanceService{repo: repo}
}

func (s *FinanceService) FindExpenseTypes(ctx context.Context) ([]models.ExpenseType, error) {
	return s.repo.FindExpenseTypes(ctx)
}

func (s *FinanceService) CreateExpenseType(ctx context.Context, et *models.ExpenseType) error {
	return s.repo.CreateExpenseType(ctx, et)
}

func (s *FinanceService) UpdateExpenseType(ctx context.Context, et *models.ExpenseType) error {
	return s.repo.UpdateExpenseType(ctx, et)
}

func (s *FinanceService) FindExpenseByID(ctx context.Context, id uint) (*models.CompanyExpense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return expense, nil
}

func (s *FinanceService) CreateExpense(ctx context.Context, expense *models.CompanyExpense) error {
	if expense.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}
	return s.repo.CreateExpense(ctx, expense)
}

func (s *FinanceService) UpdateExpense(ctx context.Context, expense *models.CompanyExpense) error {
	if expense.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}
	return s.repo.UpdateExpense(ctx, expense)
}

func (s *FinanceService) DeleteExpense(ctx context.Context, id uint) error {
	if _, err := s.repo.FindExpenseByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.DeleteExpense(ctx, id)
}

func (s *FinanceService) ListExpenses(ctx context.Context, query *repository.ListQuery) ([]models.CompanyExpense, int64, error) {
	return s.repo.ListExpenses(ctx, query)
}

func (s *FinanceService) FindIncomeByID(ctx context.Context, id uint) (*models.CompanyIncome, error) {
	income, err := s.repo.FindIncomeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return income, nil
}

func (s *FinanceService) CreateIncome(ctx context.Context, income *models.CompanyIncome) error {
	if income.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}
	return s.repo.CreateIncome(ctx, income)
}

func (s *FinanceService) UpdateIncome(ctx context.Context, income *models.CompanyIncome) error {
	if income.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}
	return s.repo.UpdateIncome(ctx, income)
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id uint) error {
	if _, err := s.repo.FindIncomeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.DeleteIncome(ctx, id)
}

func (s *FinanceService) ListIncomes(ctx context.Context, query *repository.ListQuery) ([]models.CompanyIncome, int64, error) {
	return s.repo.ListIncomes(ctx, query)
}

// MonthlySummary pairs expense and income totals per month
type MonthlySummary struct {
	Month    string  `json:"month"`
	Expenses float64 `json:"expenses"`
	Incomes  float64 `json:"incomes"`
	Balance  float64 `json:"balance"`
}

// GetMonthlySummary merges expense and income month buckets into one series
func (s *FinanceService) GetMonthlySummary(ctx context.Context, branchID uint, months int) ([]MonthlySummary, error) {
	expenses, err := s.repo.SumExpensesByMonth(ctx, branchID, months)
	if err != nil {
		return nil, err
	}
	incomes, err := s.repo.SumIncomesByMonth(ctx, branchID, months)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlySummary)
	var order []string
	for _, e := range expenses {
		byMonth[e.Month] = &MonthlySummary{Month: e.Month, Expenses: e.Total}
		order = append(order, e.Month)
	}
	for _, i := range incomes {
		if entry, ok := byMonth[i.Month]; ok {
			entry.Incomes = i.Total
		} else {
			byMonth[i.Month] = &MonthlySummary{Month: i.Month, Incomes: i.Total}
			order = append(order, i.Month)
		}
	}

	// YYYY-MM sorts correctly as plain strings
	sort.Strings(order)

	summaries := make([]MonthlySummary, 0, len(order))
	for _, m := range order {
		entry := byMonth[m]
		entry.Balance = entry.Incomes - entry.Expenses
		summaries = append(summaries, *entry)
	}
	return summaries, nil
}
