package finhelp

import (
	"context"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// MonthlyIncome converts income paid at the given frequency to a monthly figure
func (s *budgetService) MonthlyIncome(income float64, frequency PaymentFrequency) float64 {
	return income * frequency.Multiplier()
}

// Evaluate reports whether last month's spending exceeds balance plus monthly income.
// Without a balance, or with zero monthly income, the answer is always false.
func (s *budgetService) Evaluate(ctx context.Context, params *BudgetParams) (*BudgetCheck, error) {
	var check *BudgetCheck

	err := s.client.execute(ctx, OpBudgetEvaluate, func() error {
		if params == nil {
			return &ValidationError{Field: "params", Message: "is required"}
		}

		v := &validator{}
		if params.BalanceAvailable != nil {
			v.finite("balance_available", *params.BalanceAvailable)
		}
		v.finite("last_month_amount", params.LastMonthAmount)
		v.finite("income", params.Income)
		if err := v.err(); err != nil {
			return err
		}

		if !params.Frequency.IsKnown() {
			s.client.logger.Debug("unknown frequency, treating as monthly", "frequency", params.Frequency)
		}

		multiplier := params.Frequency.Multiplier()
		monthIncome := params.Income * multiplier

		check = &BudgetCheck{
			MonthlyIncome: RoundMoney(monthIncome),
			Multiplier:    multiplier,
		}
		if params.BalanceAvailable != nil && monthIncome != 0 {
			check.OverExpenses = *params.BalanceAvailable-params.LastMonthAmount+monthIncome < 0
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate budget")
	}

	return check, nil
}
