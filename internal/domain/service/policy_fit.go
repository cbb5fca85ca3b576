package service

import (
	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// PolicyFitEvaluator – weighted multi-criterion policy matching
// ---------------------------------------------------------------------------

// criterionWeight is the fixed number of points each of the four criteria is
// worth. The equal 25/25/25/25 weighting is part of the product contract;
// fit scores are always one of 0, 25, 50, 75, 100.
const criterionWeight = 25

// DefaultAmountUnitScale converts a policy's display unit (lakhs) into the
// base unit requested amounts are expressed in (rupees).
var DefaultAmountUnitScale = decimal.NewFromInt(100_000)

// FitResult is the outcome of matching an MSME against a lending policy.
type FitResult struct {
	FitScore    int
	Details     valueobject.FitDetails
	CreditScore int
	Health      valueobject.HealthRating
}

// PolicyFitEvaluator matches an applicant's derived score and rating against
// a lender policy. It is pure and total: a zero-value snapshot degrades via
// the classifier/estimator defaults, and the result is safe to compute both
// for a pre-application preview and for the authoritative submission value.
type PolicyFitEvaluator struct {
	classifier *HealthRatingClassifier
	estimator  *CreditScoreEstimator
	unitScale  decimal.Decimal
}

// NewPolicyFitEvaluator creates an evaluator with the given amount unit
// scale (see DefaultAmountUnitScale).
func NewPolicyFitEvaluator(unitScale decimal.Decimal) *PolicyFitEvaluator {
	if unitScale.LessThanOrEqual(decimal.Zero) {
		unitScale = DefaultAmountUnitScale
	}
	return &PolicyFitEvaluator{
		classifier: NewHealthRatingClassifier(),
		estimator:  NewCreditScoreEstimator(),
		unitScale:  unitScale,
	}
}

// Evaluate runs the full four-criterion check with a known requested amount.
// Used at submission time; the result is persisted on the application.
func (e *PolicyFitEvaluator) Evaluate(
	policy model.Policy,
	snapshot model.FinancialHealthSnapshot,
	vintageMonths int,
	requestedAmount decimal.Decimal,
) FitResult {
	return e.evaluate(policy, snapshot, vintageMonths, &requestedAmount)
}

// Preview runs the check before a requested amount is known. The amount
// criterion is awarded unconditionally in this mode, matching the two-phase
// application flow (eligibility preview first, amount entered at submission).
func (e *PolicyFitEvaluator) Preview(
	policy model.Policy,
	snapshot model.FinancialHealthSnapshot,
	vintageMonths int,
) FitResult {
	return e.evaluate(policy, snapshot, vintageMonths, nil)
}

func (e *PolicyFitEvaluator) evaluate(
	policy model.Policy,
	snapshot model.FinancialHealthSnapshot,
	vintageMonths int,
	requestedAmount *decimal.Decimal,
) FitResult {
	creditScore := e.estimator.Estimate(snapshot)
	health := e.classifier.Classify(snapshot)
	amountLimit := policy.MaxAmount().Mul(e.unitScale)

	criteria := []struct {
		predicate func() bool
		record    func(*valueobject.FitDetails, bool)
	}{
		{
			predicate: func() bool { return creditScore >= policy.MinCreditScore() },
			record:    func(d *valueobject.FitDetails, ok bool) { d.CreditScoreMatch = ok },
		},
		{
			predicate: func() bool { return health.AtLeast(policy.MinFinancialHealth()) },
			record:    func(d *valueobject.FitDetails, ok bool) { d.FinancialHealthMatch = ok },
		},
		{
			predicate: func() bool { return vintageMonths >= policy.MinVintageMonths() },
			record:    func(d *valueobject.FitDetails, ok bool) { d.VintageMatch = ok },
		},
		{
			predicate: func() bool {
				if requestedAmount == nil {
					return true
				}
				return requestedAmount.LessThanOrEqual(amountLimit)
			},
			record: func(d *valueobject.FitDetails, ok bool) { d.AmountWithinLimit = ok },
		},
	}

	var details valueobject.FitDetails
	score := 0
	for _, c := range criteria {
		ok := c.predicate()
		c.record(&details, ok)
		if ok {
			score += criterionWeight
		}
	}

	return FitResult{
		FitScore:    score,
		Details:     details,
		CreditScore: creditScore,
		Health:      health,
	}
}
