package finhelp

import (
	"fmt"
	"math"
)

// PresentValue recovers the outstanding principal of a PRICE loan from its
// installment, monthly rate and number of installments. rate must be positive.
func PresentValue(payment, rate float64, periods int) float64 {
	return payment * (1 - math.Pow(1+rate, -float64(periods))) / rate
}

// ClampExtra bounds a prepayment to [MinExtraAmount, MaxExtraAmount]
func ClampExtra(extra float64) float64 {
	return math.Min(math.Max(extra, MinExtraAmount), MaxExtraAmount)
}

// SimulateSchedule runs a plain PRICE schedule: every period pays interest on the
// remaining balance and amortizes the rest of the fixed payment.
func SimulateSchedule(principal, rate float64, periods int, payment float64) *Schedule {
	schedule := &Schedule{
		Principal: principal,
		Rate:      rate,
		Payment:   payment,
		Periods:   make([]Period, 0, periods),
	}

	schedule.TotalInterest, schedule.EndingBalance = simulate(principal, rate, periods, payment, 0, func(p Period) {
		schedule.Periods = append(schedule.Periods, p)
	})

	return schedule
}

// simulate runs the schedule with firstExtra added to the first payment only and
// returns the total interest and the ending balance. Later periods go back to the
// base payment. visit, when set, receives every period.
func simulate(principal, rate float64, periods int, payment, firstExtra float64, visit func(Period)) (totalInterest, balance float64) {
	balance = principal
	for i := 0; i < periods; i++ {
		paid := payment
		if i == 0 {
			paid += firstExtra
		}

		interest := rate * balance
		amortization := paid - interest
		balance -= amortization
		totalInterest += interest

		if visit != nil {
			visit(Period{
				Number:       i + 1,
				Interest:     interest,
				Amortization: amortization,
				Balance:      balance,
			})
		}
	}

	return totalInterest, balance
}

// interestSaved is the interest avoided over the whole schedule by paying extra
// together with the next installment
func interestSaved(terms *LoanTerms, extra float64) (float64, error) {
	principal := PresentValue(terms.InstallmentAmount, terms.MonthlyRate, terms.InstallmentsOutstanding)
	if !isFinite(principal) {
		return 0, overflowError(terms)
	}

	baseline, _ := simulate(principal, terms.MonthlyRate, terms.InstallmentsOutstanding, terms.InstallmentAmount, 0, nil)
	alternate, _ := simulate(principal, terms.MonthlyRate, terms.InstallmentsOutstanding, terms.InstallmentAmount, extra, nil)

	saved := baseline - alternate
	if !isFinite(baseline) || !isFinite(alternate) || !isFinite(saved) {
		return 0, overflowError(terms)
	}
	return saved, nil
}

// overflowError reports terms whose schedule leaves the float64 range, typically a
// rate given as a percentage instead of a fraction
func overflowError(terms *LoanTerms) error {
	return &ValidationError{
		Field:   "interest_rate",
		Message: fmt.Sprintf("overflows the amortization schedule over %d installments; use a monthly fraction such as 0.018", terms.InstallmentsOutstanding),
		Value:   terms.MonthlyRate,
	}
}
