package models

import (
	"time"
)

// ExpenseType categorizes company expenses (renta, planilla, publicidad...)
type ExpenseType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ExpenseType
func (ExpenseType) TableName() string {
	return "expense_types"
}

// CompanyExpense is a company-level outgoing payment record
type CompanyExpense struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BranchID      uint      `gorm:"not null;index" json:"branch_id"`
	ExpenseTypeID uint      `gorm:"not null;index" json:"expense_type_id"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description   *string   `gorm:"type:text" json:"description"`
	ExpenseDate   time.Time `gorm:"not null;index" json:"expense_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Branch      Branch      `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	ExpenseType ExpenseType `gorm:"foreignKey:ExpenseTypeID" json:"expense_type,omitempty"`
}

// TableName specifies the table name for CompanyExpense
func (CompanyExpense) TableName() string {
	return "company_expenses"
}

// CompanyIncome is a company-level incoming payment not tied to a sale
// (servicios, alquiler de espacio, etc.)
type CompanyIncome struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	Concept     string    `gorm:"not null" json:"concept"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description *string   `gorm:"type:text" json:"description"`
	IncomeDate  time.Time `gorm:"not null;index" json:"income_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Branch Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// TableName specifies the table name for CompanyIncome
func (CompanyIncome) TableName() string {
	return "company_incomes"
}

// MonthlyTotal is a per-month aggregate row for finance summaries
type MonthlyTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// CompanyExpenseResponse is the JSON response format for company expenses
type CompanyExpenseResponse struct {
	ID              uint      `json:"id"`
	BranchID        uint      `json:"branch_id"`
	ExpenseTypeID   uint      `json:"expense_type_id"`
	ExpenseTypeName string    `json:"expense_type_name"`
	Amount          float64   `json:"amount"`
	Description     *string   `json:"description"`
	ExpenseDate     time.Time `json:"expense_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts CompanyExpense to CompanyExpenseResponse
func (e *CompanyExpense) ToResponse() CompanyExpenseResponse {
	return CompanyExpenseResponse{
		ID:              e.ID,
		BranchID:        e.BranchID,
		ExpenseTypeID:   e.ExpenseTypeID,
		ExpenseTypeName: e.ExpenseType.Name,
		Amount:          e.Amount,
		Description:     e.Description,
		ExpenseDate:     e.ExpenseDate,
		CreatedAt:       e.CreatedAt,
	}
}
