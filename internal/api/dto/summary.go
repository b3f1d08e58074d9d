package dto

import (
	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
)

// SummaryRow is the denormalized per-student view the frontend tables
// consume directly, without further joins.
type SummaryRow struct {
	StudentID            int                 `json:"studentId"`
	Name                 string              `json:"name"`
	Class                string              `json:"class"`
	Status               types.StudentStatus `json:"status"`
	EnrollmentMonth      string              `json:"enrollmentMonth"`
	FeeType              types.FeeType       `json:"feeType"`
	ApplicableMonths     int                 `json:"applicableMonths"`
	ApplicableMonthsList []string            `json:"applicableMonthsList"`
	Paid                 decimal.Decimal     `json:"paid"`
	Pending              decimal.Decimal     `json:"pending"`
	IsClass10            bool                `json:"isClass10"`
}

type SummaryResponse struct {
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	TotalPending  decimal.Decimal `json:"totalPending"`
	PerStudent    []*SummaryRow   `json:"perStudent"`
}
