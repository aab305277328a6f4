package quota

// ReasonPremiumLimitReached is the wire code returned when a free-tier user
// has exhausted the monthly allowance for a gated action.
const ReasonPremiumLimitReached = "PREMIUM_LIMIT_REACHED"

// Decision is the outcome of a quota check for one request.
type Decision struct {
	Allowed   bool
	Reason    string
	Limit     int
	Current   int
	IsPremium bool
}

// Status is the API response showing current monthly usage and limits.
type Status struct {
	IsPremium bool   `json:"is_premium"`
	MonthKey  string `json:"month_key"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
}
