package tools

// HelpTemplateInput is the help_template request
type HelpTemplateInput struct {
	BalanceAvailable *float64 `json:"balance_available" jsonschema:"Current available balance (may be null or negative)"`
	LastMonthAmount  float64  `json:"last_month_amount" jsonschema:"Total spent last month"`
	Income           float64  `json:"income" jsonschema:"Income received per payment period"`
	Frequency        string   `json:"frequency" jsonschema:"Payment frequency: DAILY, WEEKLY, FORTNIGHTLY, MONTHLY, BIMONTHLY, QUARTERLY, BIANNUALLY or ANNUALLY"`
}

// HelpTemplateOutput is the help_template response
type HelpTemplateOutput struct {
	OverExpenses bool `json:"over_expenses" jsonschema:"True when last month's spending exceeds balance plus monthly income"`
}

// TransactionInput is one transaction of a surpresa_gastos request
type TransactionInput struct {
	ID           string  `json:"id" jsonschema:"Transaction ID"`
	Amount       float64 `json:"amount" jsonschema:"Amount spent (non-negative)"`
	Category     string  `json:"category" jsonschema:"Spending category"`
	TransactedAt string  `json:"transacted_at" jsonschema:"ISO-8601 timestamp; without an offset it is read as UTC"`
	Description  string  `json:"description,omitempty" jsonschema:"Free text description (optional)"`
}

// SurpresaGastosInput is the surpresa_gastos request
type SurpresaGastosInput struct {
	Transactions  []TransactionInput `json:"transactions" jsonschema:"Transactions to analyze"`
	ReferenceDate string             `json:"reference_date,omitempty" jsonschema:"Accepted for compatibility; the latest transaction day is always the reference"`
	WindowDays    *int               `json:"window_days,omitempty" jsonschema:"Days in the analysis window including the latest day (default 7)"`
	ThresholdPct  *float64           `json:"threshold_pct,omitempty" jsonschema:"Tolerated overage over the daily average as a fraction (default 0.30)"`
}

// AlertOutput is one flagged category
type AlertOutput struct {
	Category      string  `json:"category" jsonschema:"Spending category"`
	SpentRecently float64 `json:"spent_recently" jsonschema:"Total spent on the latest day"`
	DailyAvg      float64 `json:"daily_avg" jsonschema:"Average daily spend on earlier days of the window"`
	PctOver       float64 `json:"pct_over" jsonschema:"Percentage above the daily average"`
	Date          string  `json:"date" jsonschema:"Latest transaction day (YYYY-MM-DD)"`
}

// SurpresaGastosOutput is the surpresa_gastos response
type SurpresaGastosOutput struct {
	Alerts []AlertOutput `json:"alerts" jsonschema:"Categories with unusual spending on the latest day"`
}

// LembreteEmprestimoInput is the lembrete_emprestimo request
type LembreteEmprestimoInput struct {
	NextPaymentDate          string   `json:"next_payment_date" jsonschema:"Due date of the next installment (YYYY-MM-DD)"`
	MinimumInstallmentAmount float64  `json:"minimum_installment_amount" jsonschema:"Fixed installment amount"`
	InstallmentsOutstanding  int      `json:"installments_outstanding" jsonschema:"Installments still to be paid (at most 1200)"`
	InterestRate             float64  `json:"interest_rate" jsonschema:"Monthly interest rate as a fraction (0.018 = 1.8%)"`
	ExtraAmount              *float64 `json:"extra_amount,omitempty" jsonschema:"One-time extra paid with the next installment, clamped to 10..500; suggested when omitted"`
}

// LembreteEmprestimoOutput is the lembrete_emprestimo response
type LembreteEmprestimoOutput struct {
	DaysToDue              int     `json:"days_to_due" jsonschema:"Days until the next installment (0 when due or overdue)"`
	BaseAmount             float64 `json:"base_amount" jsonschema:"Installment amount"`
	ExtraAmount            float64 `json:"extra_amount" jsonschema:"Extra amount used in the simulation"`
	EstimatedInterestSaved float64 `json:"estimated_interest_saved" jsonschema:"Interest avoided over the remaining installments"`
	Message                string  `json:"message" jsonschema:"Reminder text for the client"`
}
