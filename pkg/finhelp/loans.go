package finhelp

import (
	"context"
	"fmt"

	"github.com/eshaffer321/finhelp-go/internal/templates"
	"github.com/pkg/errors"
)

const dueDateLayout = "02/01/2006"

// loanService implements the LoanService interface
type loanService struct {
	client *Client
}

// reminderData feeds the reminder message template
type reminderData struct {
	BaseAmount    string
	DueDate       string
	DaysToDue     int
	ExtraAmount   string
	InterestSaved string
}

// Remind builds the next-installment reminder. The extra amount is clamped, not
// rejected; it is applied to the next installment only.
func (s *loanService) Remind(ctx context.Context, terms *LoanTerms) (*AmortizationOutcome, error) {
	var outcome *AmortizationOutcome

	err := s.client.execute(ctx, OpLoansRemind, func() error {
		if err := validateLoanTerms(terms, true); err != nil {
			return err
		}

		due := CivilDate(terms.NextPaymentDate)
		daysToDue := daysBetween(s.client.today(), due)
		if daysToDue < 0 {
			daysToDue = 0
		}

		extra := ClampExtra(terms.ExtraAmount)
		saved, err := interestSaved(terms, extra)
		if err != nil {
			return err
		}
		saved = RoundMoney(saved)

		message, err := s.client.templates.Render(templates.MessageLoanReminder, reminderData{
			BaseAmount:    FormatMoney(terms.InstallmentAmount),
			DueDate:       due.Format(dueDateLayout),
			DaysToDue:     daysToDue,
			ExtraAmount:   FormatMoney(extra),
			InterestSaved: FormatMoney(saved),
		})
		if err != nil {
			return &Error{Code: ErrCodeInternal, Message: "failed to render reminder", Err: err}
		}

		outcome = &AmortizationOutcome{
			DueDate:                Date{Time: due},
			DaysToDue:              daysToDue,
			BaseAmount:             RoundMoney(terms.InstallmentAmount),
			ExtraAmount:            RoundMoney(extra),
			EstimatedInterestSaved: saved,
			Message:                message,
		}

		s.client.logger.Debug("loan reminder computed",
			"days_to_due", daysToDue, "extra", extra, "interest_saved", saved)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build loan reminder")
	}

	return outcome, nil
}

// SuggestExtra returns the smallest extra amount, in SuggestedExtraStep increments,
// that saves at least SuggestedMinSavings, capped at SuggestedExtraCap.
// terms.ExtraAmount is ignored.
func (s *loanService) SuggestExtra(ctx context.Context, terms *LoanTerms) (float64, error) {
	suggested := SuggestedExtraCap

	err := s.client.execute(ctx, OpLoansSuggest, func() error {
		if err := validateLoanTerms(terms, false); err != nil {
			return err
		}

		for extra := MinExtraAmount; extra <= SuggestedExtraCap; extra += SuggestedExtraStep {
			saved, err := interestSaved(terms, extra)
			if err != nil {
				return err
			}
			if RoundMoney(saved) >= SuggestedMinSavings {
				suggested = extra
				break
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to suggest extra amount")
	}

	return suggested, nil
}

// Schedule returns the baseline amortization table for the outstanding installments
func (s *loanService) Schedule(ctx context.Context, terms *LoanTerms) (*Schedule, error) {
	var schedule *Schedule

	err := s.client.execute(ctx, OpLoansSchedule, func() error {
		if err := validateLoanTerms(terms, false); err != nil {
			return err
		}

		principal := PresentValue(terms.InstallmentAmount, terms.MonthlyRate, terms.InstallmentsOutstanding)
		if !isFinite(principal) {
			return overflowError(terms)
		}

		result := SimulateSchedule(principal, terms.MonthlyRate, terms.InstallmentsOutstanding, terms.InstallmentAmount)
		if !isFinite(result.TotalInterest) || !isFinite(result.EndingBalance) {
			return overflowError(terms)
		}
		schedule = result
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to simulate schedule")
	}

	return schedule, nil
}

// validateLoanTerms rejects terms the annuity formula cannot handle. A zero rate
// would divide by zero when recovering the principal, so it is refused.
func validateLoanTerms(terms *LoanTerms, needDueDate bool) error {
	if terms == nil {
		return &ValidationError{Field: "terms", Message: "is required"}
	}

	v := &validator{}
	if needDueDate {
		v.check(!terms.NextPaymentDate.IsZero(), "next_payment_date", "is required", nil)
	}
	if v.finite("minimum_installment_amount", terms.InstallmentAmount) {
		v.check(terms.InstallmentAmount > 0, "minimum_installment_amount", "must be greater than zero", terms.InstallmentAmount)
	}
	v.check(terms.InstallmentsOutstanding > 0, "installments_outstanding", "must be a positive integer", terms.InstallmentsOutstanding)
	v.check(terms.InstallmentsOutstanding <= MaxInstallmentsOutstanding, "installments_outstanding",
		fmt.Sprintf("must not exceed %d", MaxInstallmentsOutstanding), terms.InstallmentsOutstanding)
	if v.finite("interest_rate", terms.MonthlyRate) {
		v.check(terms.MonthlyRate > 0, "interest_rate", "must be greater than zero", terms.MonthlyRate)
	}
	v.finite("extra_amount", terms.ExtraAmount)

	return v.err()
}
