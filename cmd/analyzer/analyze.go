package main

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/finhelp-go/internal/tools"
)

// maxConcurrentCalls bounds in-flight tool calls
const maxConcurrentCalls = 4

// AnalyzeOptions control the analysis run
type AnalyzeOptions struct {
	WindowDays   int
	ThresholdPct float64

	// ExtraAmount is offered on every loan; nil lets the server suggest one
	ExtraAmount *float64
}

// Report is the combined result of all tool calls for one client
type Report struct {
	Client       string              `json:"client,omitempty"`
	OverExpenses bool                `json:"over_expenses"`
	Alerts       []tools.AlertOutput `json:"alerts"`
	Loans        []LoanReport        `json:"loans"`
}

// LoanReport is the reminder computed for one loan
type LoanReport struct {
	Type string `json:"type"`
	tools.LembreteEmprestimoOutput
}

// Analyze runs the budget check, the spending scan and one reminder per loan concurrently
func Analyze(ctx context.Context, caller ToolCaller, data *ClientData, opts AnalyzeOptions) (*Report, error) {
	report := &Report{
		Client: data.Client.Name,
		Alerts: []tools.AlertOutput{},
		Loans:  make([]LoanReport, len(data.Loans)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalls)

	g.Go(func() error {
		var out tools.HelpTemplateOutput
		err := caller.Call(gctx, tools.NameHelpTemplate, tools.HelpTemplateInput{
			BalanceAvailable: data.Situation.Balance,
			LastMonthAmount:  data.Situation.LastMonthAmount,
			Income:           data.Situation.Income,
			Frequency:        data.Situation.Frequency,
		}, &out)
		if err != nil {
			return errors.Wrap(err, "budget check")
		}
		report.OverExpenses = out.OverExpenses
		return nil
	})

	g.Go(func() error {
		transactions := data.Transactions
		if transactions == nil {
			transactions = []tools.TransactionInput{}
		}

		var out tools.SurpresaGastosOutput
		err := caller.Call(gctx, tools.NameSurpresaGastos, tools.SurpresaGastosInput{
			Transactions: transactions,
			WindowDays:   &opts.WindowDays,
			ThresholdPct: &opts.ThresholdPct,
		}, &out)
		if err != nil {
			return errors.Wrap(err, "spending scan")
		}
		if out.Alerts != nil {
			report.Alerts = out.Alerts
		}
		return nil
	})

	for i, loan := range data.Loans {
		g.Go(func() error {
			var out tools.LembreteEmprestimoOutput
			err := caller.Call(gctx, tools.NameLembreteEmprestimo, tools.LembreteEmprestimoInput{
				NextPaymentDate:          loan.NextDue,
				MinimumInstallmentAmount: loan.Installment,
				InstallmentsOutstanding:  loan.InstallmentsLeft,
				InterestRate:             loan.MonthlyRate,
				ExtraAmount:              opts.ExtraAmount,
			}, &out)
			if err != nil {
				return errors.Wrapf(err, "loan %q", loan.Type)
			}
			report.Loans[i] = LoanReport{Type: loan.Type, LembreteEmprestimoOutput: out}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
