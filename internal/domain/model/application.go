package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/event"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Application aggregate root
// ---------------------------------------------------------------------------

// Application is the central transactional entity of the marketplace: one
// record per (msme, lender, policy, requested amount) submission. It is an
// immutable aggregate; every mutation returns a new copy.
//
// The credit score, health rating, fit score and fit details are snapshots
// taken at submission time and are never recomputed afterwards.
type Application struct {
	id              string
	msmeID          string
	lenderID        string
	policyID        string
	requestedAmount decimal.Decimal
	creditScore     int
	financialHealth valueobject.HealthRating
	policyFitScore  int
	fitDetails      valueobject.FitDetails
	status          valueobject.ApplicationStatus
	lenderNotes     string
	approvedAmount  decimal.Decimal
	approvedAt      *time.Time
	rejectedAt      *time.Time
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// NewApplication creates a brand-new application in pending status, carrying
// the submission-time scoring snapshot. The caller supplies the generated
// human-readable id (APP######).
func NewApplication(
	id, msmeID, lenderID, policyID string,
	requestedAmount decimal.Decimal,
	creditScore int,
	financialHealth valueobject.HealthRating,
	policyFitScore int,
	fitDetails valueobject.FitDetails,
	now time.Time,
) (Application, error) {
	if id == "" {
		return Application{}, errors.New("application ID is required")
	}
	if msmeID == "" {
		return Application{}, errors.New("MSME ID is required")
	}
	if lenderID == "" {
		return Application{}, errors.New("lender ID is required")
	}
	if policyID == "" {
		return Application{}, errors.New("policy ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return Application{}, errors.New("requested amount must be positive")
	}
	if policyFitScore < 0 || policyFitScore > 100 {
		return Application{}, errors.New("policy fit score must be between 0 and 100")
	}

	app := Application{
		id:              id,
		msmeID:          msmeID,
		lenderID:        lenderID,
		policyID:        policyID,
		requestedAmount: requestedAmount,
		creditScore:     creditScore,
		financialHealth: financialHealth,
		policyFitScore:  policyFitScore,
		fitDetails:      fitDetails,
		status:          valueobject.ApplicationStatusPending,
		approvedAmount:  decimal.Zero,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(
		id, msmeID, lenderID, policyID,
		requestedAmount, creditScore, financialHealth.String(), policyFitScore,
	))
	return app, nil
}

// ReconstructApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructApplication(
	id, msmeID, lenderID, policyID string,
	requestedAmount decimal.Decimal,
	creditScore int,
	financialHealth valueobject.HealthRating,
	policyFitScore int,
	fitDetails valueobject.FitDetails,
	status valueobject.ApplicationStatus,
	lenderNotes string,
	approvedAmount decimal.Decimal,
	approvedAt, rejectedAt *time.Time,
	createdAt, updatedAt time.Time,
) Application {
	return Application{
		id:              id,
		msmeID:          msmeID,
		lenderID:        lenderID,
		policyID:        policyID,
		requestedAmount: requestedAmount,
		creditScore:     creditScore,
		financialHealth: financialHealth,
		policyFitScore:  policyFitScore,
		fitDetails:      fitDetails,
		status:          status,
		lenderNotes:     lenderNotes,
		approvedAmount:  approvedAmount,
		approvedAt:      approvedAt,
		rejectedAt:      rejectedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// SetStatus applies a lender decision. Re-entering the current status is
// allowed and acts as a notes update; re-approving refreshes approved_amount
// and approved_at. Lender notes always overwrite the stored notes, including
// with the empty string.
func (a Application) SetStatus(
	next valueobject.ApplicationStatus,
	lenderNotes string,
	approvedAmount decimal.Decimal,
	now time.Time,
) (Application, error) {
	if next.IsZero() {
		return a, valueobject.ErrInvalidStatus
	}
	if !a.status.CanTransitionTo(next) {
		return a, valueobject.ErrInvalidStatusTransition
	}

	out := a
	out.domainEvents = copyEvents(a.domainEvents)
	out.lenderNotes = lenderNotes
	out.updatedAt = now

	previous := a.status
	out.status = next

	switch {
	case next.Equal(valueobject.ApplicationStatusApproved):
		out.approvedAmount = approvedAmount
		t := now
		out.approvedAt = &t
		out.domainEvents = append(out.domainEvents, event.NewApplicationApproved(
			a.id, a.msmeID, a.lenderID, approvedAmount,
		))
	case next.Equal(valueobject.ApplicationStatusRejected):
		t := now
		out.rejectedAt = &t
		out.domainEvents = append(out.domainEvents, event.NewApplicationRejected(
			a.id, a.msmeID, a.lenderID, lenderNotes,
		))
	default:
		out.domainEvents = append(out.domainEvents, event.NewApplicationStatusChanged(
			a.id, a.lenderID, previous.String(), next.String(),
		))
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Application) ID() string                                    { return a.id }
func (a Application) MSMEID() string                                { return a.msmeID }
func (a Application) LenderID() string                              { return a.lenderID }
func (a Application) PolicyID() string                              { return a.policyID }
func (a Application) RequestedAmount() decimal.Decimal              { return a.requestedAmount }
func (a Application) CreditScore() int                              { return a.creditScore }
func (a Application) FinancialHealth() valueobject.HealthRating     { return a.financialHealth }
func (a Application) PolicyFitScore() int                           { return a.policyFitScore }
func (a Application) FitDetails() valueobject.FitDetails            { return a.fitDetails }
func (a Application) Status() valueobject.ApplicationStatus         { return a.status }
func (a Application) LenderNotes() string                           { return a.lenderNotes }
func (a Application) ApprovedAmount() decimal.Decimal               { return a.approvedAmount }
func (a Application) ApprovedAt() *time.Time                        { return a.approvedAt }
func (a Application) RejectedAt() *time.Time                        { return a.rejectedAt }
func (a Application) CreatedAt() time.Time                          { return a.createdAt }
func (a Application) UpdatedAt() time.Time                          { return a.updatedAt }
func (a Application) DomainEvents() []event.DomainEvent             { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a Application) ClearEvents() Application {
	next := a
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
