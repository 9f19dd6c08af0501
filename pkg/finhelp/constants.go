package finhelp

const (
	// DefaultFrequencyMultiplier applies to unrecognized payment frequencies (treated as monthly)
	DefaultFrequencyMultiplier = 1.0

	// EmptyHistoryBaseline is the reference daily average for a category with no earlier days
	EmptyHistoryBaseline = 50.0

	// DefaultWindowDays is the default anomaly analysis window
	DefaultWindowDays = 7

	// DefaultThresholdPct is the default tolerated overage before a category is flagged
	DefaultThresholdPct = 0.30

	// MinExtraAmount and MaxExtraAmount bound the one-time prepayment; values outside are clamped
	MinExtraAmount = 10.0
	MaxExtraAmount = 500.0

	// MaxInstallmentsOutstanding is the longest horizon a loan schedule is simulated over (100 years monthly)
	MaxInstallmentsOutstanding = 1200

	// SuggestedExtraCap is the largest extra amount SuggestExtra proposes
	SuggestedExtraCap = 200.0

	// SuggestedExtraStep is the increment SuggestExtra searches in
	SuggestedExtraStep = 10.0

	// SuggestedMinSavings is the interest saving a suggested extra should reach
	SuggestedMinSavings = 5.0
)
