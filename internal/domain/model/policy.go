package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Policy aggregate root
// ---------------------------------------------------------------------------

// Policy is a lender-defined set of eligibility thresholds and loan terms.
// Mutations return a new copy.
type Policy struct {
	id                 string
	lenderID           string
	name               string
	description        string
	interestRate       decimal.Decimal
	maxAmount          decimal.Decimal // expressed in the configured display unit (lakhs)
	minCreditScore     int
	minFinancialHealth valueobject.HealthRating
	minVintageMonths   int
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewPolicy creates a new active policy owned by the given lender.
func NewPolicy(
	lenderID, name, description string,
	interestRate, maxAmount decimal.Decimal,
	minCreditScore int,
	minFinancialHealth valueobject.HealthRating,
	minVintageMonths int,
	now time.Time,
) (Policy, error) {
	if lenderID == "" {
		return Policy{}, errors.New("lender ID is required")
	}
	if err := validatePolicyTerms(name, interestRate, maxAmount, minCreditScore, minFinancialHealth, minVintageMonths); err != nil {
		return Policy{}, err
	}

	return Policy{
		id:                 uuid.New().String(),
		lenderID:           lenderID,
		name:               name,
		description:        description,
		interestRate:       interestRate,
		maxAmount:          maxAmount,
		minCreditScore:     minCreditScore,
		minFinancialHealth: minFinancialHealth,
		minVintageMonths:   minVintageMonths,
		active:             true,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructPolicy rebuilds a policy from persistence without validation.
func ReconstructPolicy(
	id, lenderID, name, description string,
	interestRate, maxAmount decimal.Decimal,
	minCreditScore int,
	minFinancialHealth valueobject.HealthRating,
	minVintageMonths int,
	active bool,
	createdAt, updatedAt time.Time,
) Policy {
	return Policy{
		id:                 id,
		lenderID:           lenderID,
		name:               name,
		description:        description,
		interestRate:       interestRate,
		maxAmount:          maxAmount,
		minCreditScore:     minCreditScore,
		minFinancialHealth: minFinancialHealth,
		minVintageMonths:   minVintageMonths,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// validatePolicyTerms enforces the threshold bounds shared by creation and
// updates; an update may not smuggle in values creation would reject.
func validatePolicyTerms(
	name string,
	interestRate, maxAmount decimal.Decimal,
	minCreditScore int,
	minFinancialHealth valueobject.HealthRating,
	minVintageMonths int,
) error {
	if name == "" {
		return errors.New("policy name is required")
	}
	if interestRate.IsNegative() {
		return errors.New("interest rate must not be negative")
	}
	if maxAmount.IsNegative() {
		return errors.New("max amount must not be negative")
	}
	if minCreditScore < 300 || minCreditScore > 900 {
		return errors.New("minimum credit score must be between 300 and 900")
	}
	if minFinancialHealth.IsZero() {
		return errors.New("minimum financial health is required")
	}
	if minVintageMonths < 0 {
		return errors.New("minimum vintage months must not be negative")
	}
	return nil
}

// UpdateTerms returns a copy with the lender-editable fields replaced.
func (p Policy) UpdateTerms(
	name, description string,
	interestRate, maxAmount decimal.Decimal,
	minCreditScore int,
	minFinancialHealth valueobject.HealthRating,
	minVintageMonths int,
	now time.Time,
) (Policy, error) {
	if err := validatePolicyTerms(name, interestRate, maxAmount, minCreditScore, minFinancialHealth, minVintageMonths); err != nil {
		return p, err
	}
	next := p
	next.name = name
	next.description = description
	next.interestRate = interestRate
	next.maxAmount = maxAmount
	next.minCreditScore = minCreditScore
	next.minFinancialHealth = minFinancialHealth
	next.minVintageMonths = minVintageMonths
	next.updatedAt = now
	return next, nil
}

// Deactivate returns a copy excluded from new-application discovery.
// Applications already created against the policy remain valid.
func (p Policy) Deactivate(now time.Time) Policy {
	next := p
	next.active = false
	next.updatedAt = now
	return next
}

func (p Policy) ID() string                                    { return p.id }
func (p Policy) LenderID() string                              { return p.lenderID }
func (p Policy) Name() string                                  { return p.name }
func (p Policy) Description() string                           { return p.description }
func (p Policy) InterestRate() decimal.Decimal                 { return p.interestRate }
func (p Policy) MaxAmount() decimal.Decimal                    { return p.maxAmount }
func (p Policy) MinCreditScore() int                           { return p.minCreditScore }
func (p Policy) MinFinancialHealth() valueobject.HealthRating  { return p.minFinancialHealth }
func (p Policy) MinVintageMonths() int                         { return p.minVintageMonths }
func (p Policy) IsActive() bool                                { return p.active }
func (p Policy) CreatedAt() time.Time                          { return p.createdAt }
func (p Policy) UpdatedAt() time.Time                          { return p.updatedAt }
