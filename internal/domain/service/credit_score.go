package service

import (
	"math"

	"github.com/msmebridge/marketplace/internal/domain/model"
)

// ---------------------------------------------------------------------------
// CreditScoreEstimator – proxy credit score from cash-flow metrics
// ---------------------------------------------------------------------------

// Score bounds of the proxy model.
const (
	MinCreditScore = 300
	MaxCreditScore = 900
)

// CreditScoreEstimator derives a proxy credit score from a cash-flow
// snapshot. This is a deliberately simple, explainable formula, not a
// regulated scoring model:
//
//	score = clamp(300 + stability*400 + (net cashflow > 0 ? 100 : 0), 300, 900)
//
// The positive-cashflow bonus is binary, not graduated. The estimator is a
// total function; the zero-value snapshot scores exactly 300.
type CreditScoreEstimator struct{}

// NewCreditScoreEstimator returns a new estimator instance.
func NewCreditScoreEstimator() *CreditScoreEstimator {
	return &CreditScoreEstimator{}
}

// Estimate computes the clamped proxy score.
func (e *CreditScoreEstimator) Estimate(snapshot model.FinancialHealthSnapshot) int {
	score := MinCreditScore + snapshot.CashflowStabilityScore*400
	if snapshot.NetCashflow.Sign() > 0 {
		score += 100
	}

	rounded := int(math.Round(score))
	if rounded < MinCreditScore {
		return MinCreditScore
	}
	if rounded > MaxCreditScore {
		return MaxCreditScore
	}
	return rounded
}
