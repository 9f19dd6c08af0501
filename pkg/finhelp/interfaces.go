package finhelp

import (
	"context"
)

// BudgetService checks whether income and balance cover recent spending
type BudgetService interface {
	// Evaluate reports whether last month's spending exceeds balance plus monthly income
	Evaluate(ctx context.Context, params *BudgetParams) (*BudgetCheck, error)

	// MonthlyIncome converts income paid at the given frequency to a monthly figure
	MonthlyIncome(income float64, frequency PaymentFrequency) float64
}

// SpendingService detects unusual spending in a batch of transactions
type SpendingService interface {
	// DetectAnomalies flags categories whose latest-day spend jumps above their daily average
	DetectAnomalies(ctx context.Context, params *AnomalyParams) (*AnomalyReport, error)
}

// LoanService simulates fixed-installment loans
type LoanService interface {
	// Remind builds the next-installment reminder with the savings of one extra payment
	Remind(ctx context.Context, terms *LoanTerms) (*AmortizationOutcome, error)

	// SuggestExtra picks an extra payment worth suggesting for the given loan
	SuggestExtra(ctx context.Context, terms *LoanTerms) (float64, error)

	// Schedule returns the baseline amortization table for the outstanding installments
	Schedule(ctx context.Context, terms *LoanTerms) (*Schedule, error)
}
