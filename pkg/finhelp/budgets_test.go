package finhelp

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency_Multiplier(t *testing.T) {
	tests := []struct {
		frequency PaymentFrequency
		want      float64
	}{
		{FrequencyDaily, 30},
		{FrequencyWeekly, 4},
		{FrequencyFortnightly, 2},
		{FrequencyMonthly, 1},
		{FrequencyBimonthly, 0.5},
		{FrequencyQuarterly, 1.0 / 3},
		{FrequencyBiannually, 1.0 / 6},
		{FrequencyAnnually, 1.0 / 12},
		{"HOURLY", DefaultFrequencyMultiplier},
		{"weekly", DefaultFrequencyMultiplier},
		{"", DefaultFrequencyMultiplier},
	}

	client := newTestClient(t, nil)
	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.frequency.Multiplier(), 1e-12)
			assert.InDelta(t, 1200*tt.want, client.Budget.MonthlyIncome(1200, tt.frequency), 1e-9)
		})
	}

	assert.Len(t, Frequencies(), 8)
	for _, f := range Frequencies() {
		assert.True(t, f.IsKnown(), f.String())
	}
}

func TestBudgetService_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		params *BudgetParams
		want   bool
	}{
		{
			name:   "balance plus income covers spending",
			params: &BudgetParams{BalanceAvailable: ptr(1500), LastMonthAmount: 3000, Income: 2000, Frequency: FrequencyMonthly},
			want:   false,
		},
		{
			name:   "spending exceeds balance plus income",
			params: &BudgetParams{BalanceAvailable: ptr(500), LastMonthAmount: 3000, Income: 2000, Frequency: FrequencyMonthly},
			want:   true,
		},
		{
			name:   "weekly income is multiplied by four",
			params: &BudgetParams{BalanceAvailable: ptr(0), LastMonthAmount: 3000, Income: 800, Frequency: FrequencyWeekly},
			want:   false,
		},
		{
			name:   "annual income is spread over twelve months",
			params: &BudgetParams{BalanceAvailable: ptr(0), LastMonthAmount: 3000, Income: 24000, Frequency: FrequencyAnnually},
			want:   true,
		},
		{
			name:   "exactly zero is not over",
			params: &BudgetParams{BalanceAvailable: ptr(1000), LastMonthAmount: 3000, Income: 2000, Frequency: FrequencyMonthly},
			want:   false,
		},
		{
			name:   "unknown frequency counts as monthly",
			params: &BudgetParams{BalanceAvailable: ptr(500), LastMonthAmount: 3000, Income: 2000, Frequency: "SOMETIMES"},
			want:   true,
		},
		{
			name:   "zero monthly income falls back to false",
			params: &BudgetParams{BalanceAvailable: ptr(0), LastMonthAmount: 9000, Income: 0, Frequency: FrequencyBimonthly},
			want:   false,
		},
		{
			name:   "missing balance falls back to false",
			params: &BudgetParams{LastMonthAmount: 9000, Income: 100, Frequency: FrequencyMonthly},
			want:   false,
		},
		{
			name:   "overdrawn balance is accepted",
			params: &BudgetParams{BalanceAvailable: ptr(-200), LastMonthAmount: 100, Income: 250, Frequency: FrequencyMonthly},
			want:   true,
		},
	}

	client := newTestClient(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := client.Budget.Evaluate(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, check.OverExpenses)
		})
	}
}

func TestBudgetService_Evaluate_Monotonic(t *testing.T) {
	client := newTestClient(t, nil)
	ctx := context.Background()

	over := func(balance, last, income float64) bool {
		check, err := client.Budget.Evaluate(ctx, &BudgetParams{
			BalanceAvailable: ptr(balance), LastMonthAmount: last, Income: income, Frequency: FrequencyFortnightly,
		})
		require.NoError(t, err)
		return check.OverExpenses
	}

	prev := true
	for balance := -5000.0; balance <= 5000; balance += 250 {
		got := over(balance, 3000, 500)
		assert.False(t, got && !prev, "over_expenses increased with balance at %v", balance)
		prev = got
	}

	prev = true
	for income := 1.0; income <= 5000; income += 199 {
		got := over(0, 3000, income)
		assert.False(t, got && !prev, "over_expenses increased with income at %v", income)
		prev = got
	}

	prev = false
	for last := 0.0; last <= 10000; last += 333 {
		got := over(1000, last, 1000)
		assert.False(t, prev && !got, "over_expenses decreased with last month spend at %v", last)
		prev = got
	}
}

func TestBudgetService_Evaluate_Invalid(t *testing.T) {
	client := newTestClient(t, nil)

	_, err := client.Budget.Evaluate(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = client.Budget.Evaluate(context.Background(), &BudgetParams{
		BalanceAvailable: ptr(math.NaN()), LastMonthAmount: math.Inf(1), Income: 1, Frequency: FrequencyMonthly,
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var many *ValidationErrors
	require.ErrorAs(t, err, &many)
	assert.Len(t, many.Errors, 2)
	assert.Contains(t, err.Error(), "failed to evaluate budget")
}
