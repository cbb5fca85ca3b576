package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/msmebridge/marketplace/internal/domain/model"
	"github.com/msmebridge/marketplace/internal/domain/port"
	"github.com/msmebridge/marketplace/internal/domain/valueobject"
	pkgpostgres "github.com/msmebridge/marketplace/pkg/postgres"
)

// ApplicationRepo implements port.ApplicationRepository.
type ApplicationRepo struct {
	db pkgpostgres.Querier
}

// NewApplicationRepo creates a repository backed by PostgreSQL.
func NewApplicationRepo(db pkgpostgres.Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `
	application_id, msme_id, lender_id, policy_id, requested_amount,
	msme_credit_score, msme_financial_health, policy_fit_score,
	fit_credit_score_match, fit_financial_health_match,
	fit_vintage_match, fit_amount_within_limit,
	status, lender_notes, approved_amount, approved_at, rejected_at,
	created_at, updated_at`

// Save inserts a newly submitted application.
func (r *ApplicationRepo) Save(ctx context.Context, app model.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`
	_, err := r.db.Exec(ctx, query,
		app.ID(), app.MSMEID(), app.LenderID(), app.PolicyID(), app.RequestedAmount(),
		app.CreditScore(), app.FinancialHealth().String(), app.PolicyFitScore(),
		app.FitDetails().CreditScoreMatch, app.FitDetails().FinancialHealthMatch,
		app.FitDetails().VintageMatch, app.FitDetails().AmountWithinLimit,
		app.Status().String(), app.LenderNotes(), app.ApprovedAmount(),
		app.ApprovedAt(), app.RejectedAt(),
		app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	return nil
}

// Update writes a status transition as a single UPDATE keyed by the
// application id. The scoring snapshot columns are deliberately immutable.
// Concurrent transitions race last-write-wins.
func (r *ApplicationRepo) Update(ctx context.Context, app model.Application) error {
	query := `
		UPDATE applications SET
			status          = $2,
			lender_notes    = $3,
			approved_amount = $4,
			approved_at     = $5,
			rejected_at     = $6,
			updated_at      = $7
		WHERE application_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		app.ID(), app.Status().String(), app.LenderNotes(),
		app.ApprovedAmount(), app.ApprovedAt(), app.RejectedAt(),
		app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", app.ID(), port.ErrNotFound)
	}
	return nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, applicationID string) (model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, applicationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, fmt.Errorf("application %s: %w", applicationID, port.ErrNotFound)
	}
	return app, err
}

// FindByMSME retrieves a borrower's applications, newest first.
func (r *ApplicationRepo) FindByMSME(ctx context.Context, msmeID string, filter port.ApplicationFilter) ([]model.Application, error) {
	return r.findBy(ctx, "msme_id", msmeID, filter)
}

// FindByLender retrieves a lender's incoming applications, newest first.
func (r *ApplicationRepo) FindByLender(ctx context.Context, lenderID string, filter port.ApplicationFilter) ([]model.Application, error) {
	return r.findBy(ctx, "lender_id", lenderID, filter)
}

// sortableColumns whitelists the columns ORDER BY may name. Anything else
// falls back to created_at.
var sortableColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"requested_amount": true,
	"approved_amount":  true,
	"policy_fit_score": true,
	"status":           true,
}

func (r *ApplicationRepo) findBy(ctx context.Context, column, value string, filter port.ApplicationFilter) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE ` + column + ` = $1`
	args := []any{value}
	if !filter.Status.IsZero() {
		query += ` AND status = $2`
		args = append(args, filter.Status.String())
	}
	query += ` ORDER BY ` + orderClause(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var result []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func orderClause(filter port.ApplicationFilter) string {
	column := filter.SortField
	if !sortableColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.Application, error) {
	var (
		id, msmeID, lenderID, policyID string
		requestedAmount                decimal.Decimal
		creditScore                    int
		healthStr                      string
		fitScore                       int
		details                        valueobject.FitDetails
		statusStr, lenderNotes         string
		approvedAmount                 decimal.Decimal
		approvedAt, rejectedAt         *time.Time
		createdAt, updatedAt           time.Time
	)

	err := s.Scan(
		&id, &msmeID, &lenderID, &policyID, &requestedAmount,
		&creditScore, &healthStr, &fitScore,
		&details.CreditScoreMatch, &details.FinancialHealthMatch,
		&details.VintageMatch, &details.AmountWithinLimit,
		&statusStr, &lenderNotes, &approvedAmount, &approvedAt, &rejectedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, err
		}
		return model.Application{}, fmt.Errorf("scan application: %w", err)
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructApplication(
		id, msmeID, lenderID, policyID, requestedAmount,
		creditScore, valueobject.HealthRatingOrDefault(healthStr),
		fitScore, details, status, lenderNotes,
		approvedAmount, approvedAt, rejectedAt,
		createdAt, updatedAt,
	), nil
}
