package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldCallID    = "call_id"
	FieldTool      = "tool"
	FieldOperation = "operation"
	FieldDuration  = "duration_ms"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldAddr      = "addr"
	FieldTransport = "transport"
	FieldFrequency = "frequency"
	FieldCategory  = "category"
	FieldAlerts    = "alerts"
	FieldDaysToDue = "days_to_due"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentMCP       = "mcp"
	ComponentBudget    = "budget"
	ComponentSpending  = "spending"
	ComponentLoans     = "loans"
	ComponentAnalyzer  = "analyzer"
	ComponentTransport = "transport"
	ComponentConfig    = "config"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeInternal      = "internal_error"
)
