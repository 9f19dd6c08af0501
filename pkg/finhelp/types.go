package finhelp

import (
	"time"
)

// Transaction is a single categorized spend
type Transaction struct {
	ID           string    `json:"id"`
	Amount       float64   `json:"amount"`
	Category     string    `json:"category"`
	TransactedAt time.Time `json:"transacted_at"`
	Description  string    `json:"description,omitempty"`
}

// BudgetParams are the inputs of a budget adequacy check
type BudgetParams struct {
	// BalanceAvailable is optional; without it the check cannot fail
	BalanceAvailable *float64
	LastMonthAmount  float64
	Income           float64
	Frequency        PaymentFrequency
}

// BudgetCheck is the result of a budget adequacy check
type BudgetCheck struct {
	OverExpenses  bool    `json:"over_expenses"`
	MonthlyIncome float64 `json:"monthly_income"`
	Multiplier    float64 `json:"multiplier"`
}

// AnomalyParams are the inputs of a spending anomaly scan
type AnomalyParams struct {
	Transactions []Transaction

	// ReferenceDate is accepted for compatibility; the anchor is always the latest transaction day
	ReferenceDate *time.Time

	WindowDays   int
	ThresholdPct float64
}

// AnomalyAlert flags a category whose latest-day spend is unusually high
type AnomalyAlert struct {
	Category      string  `json:"category"`
	SpentRecently float64 `json:"spent_recently"`
	DailyAvg      float64 `json:"daily_avg"`
	PctOver       float64 `json:"pct_over"`
	Date          Date    `json:"date"`
}

// AnomalyReport is the result of a spending anomaly scan
type AnomalyReport struct {
	Alerts []AnomalyAlert `json:"alerts"`
}

// LoanTerms describe the remaining part of a fixed-installment loan
type LoanTerms struct {
	NextPaymentDate         time.Time
	InstallmentAmount       float64
	InstallmentsOutstanding int
	MonthlyRate             float64

	// ExtraAmount is clamped into [MinExtraAmount, MaxExtraAmount]
	ExtraAmount float64
}

// AmortizationOutcome is the reminder produced for the next installment
type AmortizationOutcome struct {
	DueDate                Date    `json:"due_date"`
	DaysToDue              int     `json:"days_to_due"`
	BaseAmount             float64 `json:"base_amount"`
	ExtraAmount            float64 `json:"extra_amount"`
	EstimatedInterestSaved float64 `json:"estimated_interest_saved"`
	Message                string  `json:"message"`
}

// Schedule is an amortization table
type Schedule struct {
	Principal     float64  `json:"principal"`
	Rate          float64  `json:"rate"`
	Payment       float64  `json:"payment"`
	Periods       []Period `json:"periods"`
	TotalInterest float64  `json:"total_interest"`
	EndingBalance float64  `json:"ending_balance"`
}

// Period is one row of an amortization table
type Period struct {
	Number       int     `json:"number"`
	Interest     float64 `json:"interest"`
	Amortization float64 `json:"amortization"`
	Balance      float64 `json:"balance"`
}
