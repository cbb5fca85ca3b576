package service

import (
	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// HealthRatingClassifier – domain service for ordinal health classification
// ---------------------------------------------------------------------------

// HealthRatingClassifier derives an ordinal financial-health rating from a
// cash-flow snapshot. It is a total function: the zero-value "no data yet"
// snapshot is a valid input and classifies as Fair, the neutral default.
// A present snapshot whose metrics happen to be zero still rates Poor.
type HealthRatingClassifier struct{}

// NewHealthRatingClassifier returns a new classifier instance.
func NewHealthRatingClassifier() *HealthRatingClassifier {
	return &HealthRatingClassifier{}
}

// Classify evaluates the rating rules top-down, first match wins.
//
// Rules:
//
//	stability >= 0.8 AND net cashflow > 0  AND volatility < 0.3 -> Excellent
//	stability >= 0.6 AND net cashflow >= 0 AND volatility < 0.5 -> Good
//	stability >= 0.4 AND volatility < 0.7                       -> Fair
//	otherwise                                                   -> Poor
//
// The strict/inclusive comparisons are contractual: a snapshot with
// volatility exactly 0.3 must not classify as Excellent.
//
// "No analysis available" is not the same as "analysed and weak": with no
// snapshot at all the MSME gets the neutral Fair rating rather than being
// penalised down to Poor.
func (c *HealthRatingClassifier) Classify(snapshot model.FinancialHealthSnapshot) valueobject.HealthRating {
	if snapshot.IsZero() {
		return valueobject.HealthRatingFair
	}

	stability := snapshot.CashflowStabilityScore
	volatility := snapshot.VolatilityScore
	netSign := snapshot.NetCashflow.Sign()

	switch {
	case stability >= 0.8 && netSign > 0 && volatility < 0.3:
		return valueobject.HealthRatingExcellent
	case stability >= 0.6 && netSign >= 0 && volatility < 0.5:
		return valueobject.HealthRatingGood
	case stability >= 0.4 && volatility < 0.7:
		return valueobject.HealthRatingFair
	default:
		return valueobject.HealthRatingPoor
	}
}
