package finhelp

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, category string, amount float64, at string) Transaction {
	ts, err := ParseTimestamp(at)
	if err != nil {
		panic(err)
	}
	return Transaction{ID: id, Amount: amount, Category: category, TransactedAt: ts}
}

func detect(t *testing.T, params *AnomalyParams) []AnomalyAlert {
	t.Helper()
	client := newTestClient(t, nil)
	if params.WindowDays == 0 {
		params.WindowDays = DefaultWindowDays
	}
	report, err := client.Spending.DetectAnomalies(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, report.Alerts)
	return report.Alerts
}

func TestSpendingService_DetectAnomalies_Empty(t *testing.T) {
	alerts := detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct})
	assert.Empty(t, alerts)
	assert.NotNil(t, alerts)
}

func TestSpendingService_DetectAnomalies_SpikesOnLatestDay(t *testing.T) {
	alerts := detect(t, &AnomalyParams{
		ThresholdPct: DefaultThresholdPct,
		Transactions: []Transaction{
			tx("1", "Alimentação", 50, "2025-07-08T12:00:00Z"),
			tx("2", "Transporte", 100, "2025-07-08T08:00:00Z"),
			tx("3", "Alimentação", 45, "2025-07-09T12:30:00Z"),
			tx("4", "Transporte", 120, "2025-07-09T08:10:00Z"),
			tx("5", "Transporte", 500, "2025-07-10T09:00:00Z"),
			tx("6", "Alimentação", 200, "2025-07-10T13:00:00Z"),
		},
	})

	require.Len(t, alerts, 2)

	assert.Equal(t, "Transporte", alerts[0].Category)
	assert.Equal(t, 500.0, alerts[0].SpentRecently)
	assert.Equal(t, 110.0, alerts[0].DailyAvg)
	assert.Equal(t, 354.5, alerts[0].PctOver)
	assert.Equal(t, "2025-07-10", alerts[0].Date.String())

	assert.Equal(t, "Alimentação", alerts[1].Category)
	assert.Equal(t, 200.0, alerts[1].SpentRecently)
	assert.Equal(t, 47.5, alerts[1].DailyAvg)
	assert.Equal(t, 321.1, alerts[1].PctOver)
}

func TestSpendingService_DetectAnomalies_NewCategoryUsesBaseline(t *testing.T) {
	alerts := detect(t, &AnomalyParams{
		ThresholdPct: DefaultThresholdPct,
		Transactions: []Transaction{
			tx("1", "Alimentação", 50, "2025-07-09T12:00:00Z"),
			tx("2", "Lazer", 100000, "2025-07-10T20:00:00Z"),
			tx("3", "Alimentação", 180, "2025-07-10T12:00:00Z"),
			tx("4", "Saúde", 60, "2025-07-10T15:00:00Z"),
		},
	})

	require.Len(t, alerts, 2)
	assert.Equal(t, "Lazer", alerts[0].Category)
	assert.Equal(t, EmptyHistoryBaseline, alerts[0].DailyAvg)
	assert.Equal(t, 199900.0, alerts[0].PctOver)
	assert.Equal(t, "Alimentação", alerts[1].Category)
	assert.Equal(t, 260.0, alerts[1].PctOver)
}

func TestSpendingService_DetectAnomalies_ThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name    string
		spent   float64
		flagged bool
	}{
		{name: "exactly at threshold", spent: 150, flagged: false},
		{name: "just above threshold", spent: 150.01, flagged: true},
		{name: "below average", spent: 20, flagged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := detect(t, &AnomalyParams{
				ThresholdPct: 0.5,
				Transactions: []Transaction{
					tx("1", "Mercado", 100, "2025-07-09T10:00:00Z"),
					tx("2", "Mercado", tt.spent, "2025-07-10T10:00:00Z"),
				},
			})
			assert.Equal(t, tt.flagged, len(alerts) == 1)
		})
	}
}

func TestSpendingService_DetectAnomalies_Window(t *testing.T) {
	txs := []Transaction{
		tx("1", "Mercado", 1000, "2025-07-03T10:00:00Z"),
		tx("2", "Mercado", 100, "2025-07-04T10:00:00Z"),
		tx("3", "Mercado", 200, "2025-07-10T10:00:00Z"),
	}

	// the 3rd falls one day outside a seven day window ending on the 10th
	alerts := detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct, WindowDays: 7, Transactions: txs})
	require.Len(t, alerts, 1)
	assert.Equal(t, 100.0, alerts[0].DailyAvg)
	assert.Equal(t, 100.0, alerts[0].PctOver)

	alerts = detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct, WindowDays: 8, Transactions: txs})
	assert.Empty(t, alerts)

	// a one day window has no history, so the baseline applies
	alerts = detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct, WindowDays: 1, Transactions: txs})
	require.Len(t, alerts, 1)
	assert.Equal(t, EmptyHistoryBaseline, alerts[0].DailyAvg)
}

func TestSpendingService_DetectAnomalies_AveragesOverActiveDays(t *testing.T) {
	alerts := detect(t, &AnomalyParams{
		ThresholdPct: DefaultThresholdPct,
		Transactions: []Transaction{
			tx("1", "Mercado", 30, "2025-07-05T10:00:00Z"),
			tx("2", "Mercado", 30, "2025-07-05T18:00:00Z"),
			tx("3", "Mercado", 40, "2025-07-08T10:00:00Z"),
			tx("4", "Mercado", 90, "2025-07-10T10:00:00Z"),
			tx("5", "Mercado", 10, "2025-07-10T19:00:00Z"),
		},
	})

	// two active days (60 and 40), days without spend are not counted
	require.Len(t, alerts, 1)
	assert.Equal(t, 50.0, alerts[0].DailyAvg)
	assert.Equal(t, 100.0, alerts[0].SpentRecently)
	assert.Equal(t, 100.0, alerts[0].PctOver)
}

func TestSpendingService_DetectAnomalies_ZeroAverageIsSkipped(t *testing.T) {
	alerts := detect(t, &AnomalyParams{
		ThresholdPct: DefaultThresholdPct,
		Transactions: []Transaction{
			tx("1", "Estornos", 0, "2025-07-09T10:00:00Z"),
			tx("2", "Estornos", 500, "2025-07-10T10:00:00Z"),
		},
	})
	assert.Empty(t, alerts)
}

func TestSpendingService_DetectAnomalies_UsesLocalCalendarDay(t *testing.T) {
	alerts := detect(t, &AnomalyParams{
		ThresholdPct: DefaultThresholdPct,
		Transactions: []Transaction{
			tx("1", "Bar", 40, "2025-07-09T12:00:00-03:00"),
			// 02:30 UTC on the 11th, still the 10th in São Paulo
			tx("2", "Bar", 200, "2025-07-10T23:30:00-03:00"),
		},
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, "2025-07-10", alerts[0].Date.String())
	assert.Equal(t, 40.0, alerts[0].DailyAvg)
}

func TestSpendingService_DetectAnomalies_ReferenceDateIgnored(t *testing.T) {
	txs := []Transaction{
		tx("1", "Mercado", 100, "2025-07-09T10:00:00Z"),
		tx("2", "Mercado", 300, "2025-07-10T10:00:00Z"),
	}
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	without := detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct, Transactions: txs})
	with := detect(t, &AnomalyParams{ThresholdPct: DefaultThresholdPct, Transactions: txs, ReferenceDate: &ref})

	assert.Equal(t, without, with)
	require.Len(t, with, 1)
	assert.Equal(t, "2025-07-10", with[0].Date.String())
}

func TestSpendingService_DetectAnomalies_Invalid(t *testing.T) {
	valid := tx("1", "Mercado", 10, "2025-07-10T10:00:00Z")

	tests := []struct {
		name   string
		params *AnomalyParams
	}{
		{name: "nil params", params: nil},
		{name: "zero window", params: &AnomalyParams{WindowDays: 0, Transactions: []Transaction{valid}}},
		{name: "negative window", params: &AnomalyParams{WindowDays: -3}},
		{name: "nan threshold", params: &AnomalyParams{WindowDays: 7, ThresholdPct: math.NaN()}},
		{
			name:   "negative amount",
			params: &AnomalyParams{WindowDays: 7, Transactions: []Transaction{valid, {ID: "2", Amount: -5, Category: "x", TransactedAt: valid.TransactedAt}}},
		},
		{
			name:   "missing timestamp",
			params: &AnomalyParams{WindowDays: 7, Transactions: []Transaction{{ID: "2", Amount: 5, Category: "x"}}},
		},
	}

	client := newTestClient(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := client.Spending.DetectAnomalies(context.Background(), tt.params)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, IsValidation(err))
		})
	}
}
