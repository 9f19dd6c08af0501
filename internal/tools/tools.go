package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/finhelp-go/internal/log"
	"github.com/eshaffer321/finhelp-go/internal/templates"
	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

// Tool names
const (
	NameHelpTemplate       = "help_template"
	NameSurpresaGastos     = "surpresa_gastos"
	NameLembreteEmprestimo = "lembrete_emprestimo"
)

// Defaults are applied when a request leaves an optional field out
type Defaults struct {
	WindowDays   int
	ThresholdPct float64
}

// Handlers holds the engine client and implements all tool handlers
type Handlers struct {
	client   *finhelp.Client
	logger   *log.Logger
	defaults Defaults
}

// NewHandlers creates the tool handlers. Zero defaults fall back to the engine's.
func NewHandlers(client *finhelp.Client, logger *log.Logger, defaults Defaults) *Handlers {
	if logger == nil {
		logger = log.Discard()
	}
	if defaults.WindowDays <= 0 {
		defaults.WindowDays = finhelp.DefaultWindowDays
	}
	if defaults.ThresholdPct == 0 {
		defaults.ThresholdPct = finhelp.DefaultThresholdPct
	}
	return &Handlers{client: client, logger: logger, defaults: defaults}
}

// Register adds all tools to the server
func Register(server *mcp.Server, h *Handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        NameHelpTemplate,
		Title:       "Verifica Orçamento",
		Description: templates.MustLoad(templates.ToolHelpTemplate),
	}, h.HelpTemplate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        NameSurpresaGastos,
		Title:       "Sinaliza Gastos “Surpresa”",
		Description: templates.MustLoad(templates.ToolSurpresaGastos),
	}, h.SurpresaGastos)

	mcp.AddTool(server, &mcp.Tool{
		Name:        NameLembreteEmprestimo,
		Title:       "Lembrete de Empréstimo",
		Description: templates.MustLoad(templates.ToolLembreteEmprestimo),
	}, h.LembreteEmprestimo)
}

// HelpTemplate checks whether balance plus monthly income covers last month's spending
func (h *Handlers) HelpTemplate(ctx context.Context, req *mcp.CallToolRequest, input HelpTemplateInput) (*mcp.CallToolResult, HelpTemplateOutput, error) {
	logger, done := h.begin(NameHelpTemplate, log.ComponentBudget)

	check, err := h.client.Budget.Evaluate(ctx, &finhelp.BudgetParams{
		BalanceAvailable: input.BalanceAvailable,
		LastMonthAmount:  input.LastMonthAmount,
		Income:           input.Income,
		Frequency:        finhelp.PaymentFrequency(input.Frequency),
	})
	done(err)
	if err != nil {
		return nil, HelpTemplateOutput{}, err
	}

	logger.Debug("budget evaluated", log.FieldFrequency, input.Frequency, "monthly_income", check.MonthlyIncome)

	return nil, HelpTemplateOutput{OverExpenses: check.OverExpenses}, nil
}

// SurpresaGastos flags categories with unusual spending on the latest transaction day
func (h *Handlers) SurpresaGastos(ctx context.Context, req *mcp.CallToolRequest, input SurpresaGastosInput) (*mcp.CallToolResult, SurpresaGastosOutput, error) {
	logger, done := h.begin(NameSurpresaGastos, log.ComponentSpending)

	params, err := h.anomalyParams(input)
	if err != nil {
		done(err)
		return nil, SurpresaGastosOutput{}, err
	}

	report, err := h.client.Spending.DetectAnomalies(ctx, params)
	done(err)
	if err != nil {
		return nil, SurpresaGastosOutput{}, err
	}

	alerts := make([]AlertOutput, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		alerts = append(alerts, AlertOutput{
			Category:      a.Category,
			SpentRecently: a.SpentRecently,
			DailyAvg:      a.DailyAvg,
			PctOver:       a.PctOver,
			Date:          a.Date.String(),
		})
	}

	logger.Debug("spending analyzed", "transactions", len(input.Transactions), log.FieldAlerts, len(alerts))

	return nil, SurpresaGastosOutput{Alerts: alerts}, nil
}

// LembreteEmprestimo builds the next-installment reminder with the savings of one extra payment
func (h *Handlers) LembreteEmprestimo(ctx context.Context, req *mcp.CallToolRequest, input LembreteEmprestimoInput) (*mcp.CallToolResult, LembreteEmprestimoOutput, error) {
	logger, done := h.begin(NameLembreteEmprestimo, log.ComponentLoans)

	terms, err := loanTerms(input)
	if err != nil {
		done(err)
		return nil, LembreteEmprestimoOutput{}, err
	}

	if input.ExtraAmount == nil {
		suggested, err := h.client.Loans.SuggestExtra(ctx, terms)
		if err != nil {
			done(err)
			return nil, LembreteEmprestimoOutput{}, err
		}
		terms.ExtraAmount = suggested
		logger.Debug("extra amount suggested", "extra", suggested)
	} else {
		terms.ExtraAmount = *input.ExtraAmount
	}

	outcome, err := h.client.Loans.Remind(ctx, terms)
	done(err)
	if err != nil {
		return nil, LembreteEmprestimoOutput{}, err
	}

	logger.Debug("reminder built", log.FieldDaysToDue, outcome.DaysToDue, "interest_saved", outcome.EstimatedInterestSaved)

	return nil, LembreteEmprestimoOutput{
		DaysToDue:              outcome.DaysToDue,
		BaseAmount:             outcome.BaseAmount,
		ExtraAmount:            outcome.ExtraAmount,
		EstimatedInterestSaved: outcome.EstimatedInterestSaved,
		Message:                outcome.Message,
	}, nil
}

// begin tags a call with a correlation id and returns a function that logs its outcome
func (h *Handlers) begin(tool, component string) (*log.Logger, func(error)) {
	logger := h.logger.WithComponent(component).With(log.FieldTool, tool, log.FieldCallID, uuid.NewString())
	start := time.Now()

	return logger, func(err error) {
		duration := time.Since(start).Milliseconds()
		if err == nil {
			logger.Info("tool call completed", log.FieldDuration, duration, log.FieldSuccess, true)
			return
		}

		errorType := log.ErrorTypeInternal
		if finhelp.IsValidation(err) {
			errorType = log.ErrorTypeValidation
		}
		logger.Warn("tool call failed",
			log.FieldDuration, duration,
			log.FieldSuccess, false,
			log.FieldError, err.Error(),
			log.FieldErrorType, errorType)
	}
}

func (h *Handlers) anomalyParams(input SurpresaGastosInput) (*finhelp.AnomalyParams, error) {
	params := &finhelp.AnomalyParams{
		Transactions: make([]finhelp.Transaction, 0, len(input.Transactions)),
		WindowDays:   h.defaults.WindowDays,
		ThresholdPct: h.defaults.ThresholdPct,
	}
	if input.WindowDays != nil {
		params.WindowDays = *input.WindowDays
	}
	if input.ThresholdPct != nil {
		params.ThresholdPct = *input.ThresholdPct
	}

	if input.ReferenceDate != "" {
		ref, err := finhelp.ParseTimestamp(input.ReferenceDate)
		if err != nil {
			return nil, invalidField("reference_date", err)
		}
		params.ReferenceDate = &ref
	}

	for i, tx := range input.Transactions {
		at, err := finhelp.ParseTimestamp(tx.TransactedAt)
		if err != nil {
			return nil, invalidField(fmt.Sprintf("transactions[%d].transacted_at", i), err)
		}
		params.Transactions = append(params.Transactions, finhelp.Transaction{
			ID:           tx.ID,
			Amount:       tx.Amount,
			Category:     tx.Category,
			TransactedAt: at,
			Description:  tx.Description,
		})
	}

	return params, nil
}

func loanTerms(input LembreteEmprestimoInput) (*finhelp.LoanTerms, error) {
	due, err := finhelp.ParseDate(input.NextPaymentDate)
	if err != nil {
		return nil, invalidField("next_payment_date", err)
	}

	return &finhelp.LoanTerms{
		NextPaymentDate:         due,
		InstallmentAmount:       input.MinimumInstallmentAmount,
		InstallmentsOutstanding: input.InstallmentsOutstanding,
		MonthlyRate:             input.InterestRate,
	}, nil
}

func invalidField(field string, err error) error {
	return &finhelp.ValidationError{Field: field, Message: err.Error()}
}
