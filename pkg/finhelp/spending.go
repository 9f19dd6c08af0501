package finhelp

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// spendingService implements the SpendingService interface
type spendingService struct {
	client *Client
}

// categoryDays accumulates one category's spend per calendar day, keeping the
// order days were first seen so sums are reproducible
type categoryDays struct {
	totals map[time.Time]float64
	order  []time.Time
}

func (c *categoryDays) add(day time.Time, amount float64) {
	if _, ok := c.totals[day]; !ok {
		c.order = append(c.order, day)
	}
	c.totals[day] += amount
}

// averageBefore is the mean daily spend over the days strictly before anchor
func (c *categoryDays) averageBefore(anchor time.Time) float64 {
	var sum float64
	var n int
	for _, day := range c.order {
		if day.Before(anchor) {
			sum += c.totals[day]
			n++
		}
	}
	if n == 0 {
		return EmptyHistoryBaseline
	}
	return sum / float64(n)
}

// DetectAnomalies flags categories whose spend on the latest transaction day
// exceeds their daily average over the preceding window by more than ThresholdPct.
func (s *spendingService) DetectAnomalies(ctx context.Context, params *AnomalyParams) (*AnomalyReport, error) {
	var report *AnomalyReport

	err := s.client.execute(ctx, OpSpendingDetect, func() error {
		if err := validateAnomalyParams(params); err != nil {
			return err
		}

		report = &AnomalyReport{Alerts: []AnomalyAlert{}}
		if len(params.Transactions) == 0 {
			return nil
		}

		var anchor time.Time
		for _, tx := range params.Transactions {
			if day := CivilDate(tx.TransactedAt); day.After(anchor) {
				anchor = day
			}
		}
		start := anchor.AddDate(0, 0, -(params.WindowDays - 1))

		if params.ReferenceDate != nil && !CivilDate(*params.ReferenceDate).Equal(anchor) {
			s.client.logger.Debug("reference date differs from latest transaction day",
				"reference_date", NewDate(*params.ReferenceDate).String(),
				"anchor", NewDate(anchor).String())
		}

		byCategory := make(map[string]*categoryDays)
		anchorTotals := make(map[string]float64)
		var anchorOrder []string

		for _, tx := range params.Transactions {
			day := CivilDate(tx.TransactedAt)
			if day.Before(start) || day.After(anchor) {
				continue
			}

			days, ok := byCategory[tx.Category]
			if !ok {
				days = &categoryDays{totals: make(map[time.Time]float64)}
				byCategory[tx.Category] = days
			}
			days.add(day, tx.Amount)

			if day.Equal(anchor) {
				if _, seen := anchorTotals[tx.Category]; !seen {
					anchorOrder = append(anchorOrder, tx.Category)
				}
				anchorTotals[tx.Category] += tx.Amount
			}
		}

		for _, category := range anchorOrder {
			spent := anchorTotals[category]
			avg := byCategory[category].averageBefore(anchor)

			if avg == 0 || spent <= avg*(1+params.ThresholdPct) {
				continue
			}

			report.Alerts = append(report.Alerts, AnomalyAlert{
				Category:      category,
				SpentRecently: RoundMoney(spent),
				DailyAvg:      RoundMoney(avg),
				PctOver:       RoundPercent((spent/avg - 1) * 100),
				Date:          NewDate(anchor),
			})
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to detect spending anomalies")
	}

	return report, nil
}

func validateAnomalyParams(params *AnomalyParams) error {
	if params == nil {
		return &ValidationError{Field: "params", Message: "is required"}
	}

	v := &validator{}
	v.check(params.WindowDays > 0, "window_days", "must be a positive integer", params.WindowDays)
	v.finite("threshold_pct", params.ThresholdPct)

	for i, tx := range params.Transactions {
		amountField := fmt.Sprintf("transactions[%d].amount", i)
		if v.finite(amountField, tx.Amount) {
			v.check(tx.Amount >= 0, amountField, "must not be negative", tx.Amount)
		}
		v.check(!tx.TransactedAt.IsZero(), fmt.Sprintf("transactions[%d].transacted_at", i), "is required", nil)
	}

	return v.err()
}
