package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/eshaffer321/finhelp-go/internal/tools"
)

// ClientData is the client profile file consumed by the analyzer
type ClientData struct {
	Client       ClientProfile            `json:"cliente"`
	Situation    FinancialSituation       `json:"situacao_financeira"`
	Loans        []Loan                   `json:"emprestimos"`
	Transactions []tools.TransactionInput `json:"transacoes_recentes"`
}

// ClientProfile identifies the client
type ClientProfile struct {
	Name       string `json:"nome"`
	Profession string `json:"profissao,omitempty"`
}

// FinancialSituation is the client's current balance and income
type FinancialSituation struct {
	Balance         *float64 `json:"saldo_atual"`
	Income          float64  `json:"renda_mensal"`
	Frequency       string   `json:"frequencia_pagamento"`
	LastMonthAmount float64  `json:"gastos_mes_passado"`
}

// Loan is one fixed-installment loan of the client
type Loan struct {
	Type             string  `json:"tipo"`
	RemainingBalance float64 `json:"valor_restante,omitempty"`
	InstallmentsLeft int     `json:"parcelas_restantes"`
	Installment      float64 `json:"valor_parcela"`
	MonthlyRate      float64 `json:"juros_mensal"`
	NextDue          string  `json:"proximo_vencimento"`
}

// LoadClientData reads a client data file
func LoadClientData(path string) (*ClientData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading client data %s", path)
	}

	var data ClientData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, "parsing client data %s", path)
	}

	if data.Situation.Frequency == "" {
		data.Situation.Frequency = "MONTHLY"
	}

	return &data, nil
}
