package finhelp

// PaymentFrequency is how often income is received
type PaymentFrequency string

// Supported payment frequencies
const (
	FrequencyDaily       PaymentFrequency = "DAILY"
	FrequencyWeekly      PaymentFrequency = "WEEKLY"
	FrequencyFortnightly PaymentFrequency = "FORTNIGHTLY"
	FrequencyMonthly     PaymentFrequency = "MONTHLY"
	FrequencyBimonthly   PaymentFrequency = "BIMONTHLY"
	FrequencyQuarterly   PaymentFrequency = "QUARTERLY"
	FrequencyBiannually  PaymentFrequency = "BIANNUALLY"
	FrequencyAnnually    PaymentFrequency = "ANNUALLY"
)

// frequencyMultipliers holds periods per month for each frequency
var frequencyMultipliers = map[PaymentFrequency]float64{
	FrequencyDaily:       30,
	FrequencyWeekly:      4,
	FrequencyFortnightly: 2,
	FrequencyMonthly:     1,
	FrequencyBimonthly:   0.5,
	FrequencyQuarterly:   1.0 / 3,
	FrequencyBiannually:  1.0 / 6,
	FrequencyAnnually:    1.0 / 12,
}

// Frequencies returns the supported frequencies from most to least frequent
func Frequencies() []PaymentFrequency {
	return []PaymentFrequency{
		FrequencyDaily,
		FrequencyWeekly,
		FrequencyFortnightly,
		FrequencyMonthly,
		FrequencyBimonthly,
		FrequencyQuarterly,
		FrequencyBiannually,
		FrequencyAnnually,
	}
}

// Multiplier returns the periods-per-month factor. Tokens are matched exactly;
// anything unknown gets DefaultFrequencyMultiplier.
func (f PaymentFrequency) Multiplier() float64 {
	if m, ok := frequencyMultipliers[f]; ok {
		return m
	}
	return DefaultFrequencyMultiplier
}

// IsKnown reports whether f is one of the supported frequencies
func (f PaymentFrequency) IsKnown() bool {
	_, ok := frequencyMultipliers[f]
	return ok
}

// String returns the frequency token
func (f PaymentFrequency) String() string {
	return string(f)
}
