package valueobject

// FitDetails records the per-criterion outcome of a policy-fit evaluation.
// It is fixed at application-submission time and never recomputed, so the
// decision rationale stays auditable even if the policy changes later.
type FitDetails struct {
	CreditScoreMatch     bool `json:"credit_score_match"`
	FinancialHealthMatch bool `json:"financial_health_match"`
	VintageMatch         bool `json:"vintage_match"`
	AmountWithinLimit    bool `json:"amount_within_limit"`
}
