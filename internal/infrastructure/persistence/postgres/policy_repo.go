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

// PolicyRepo implements port.PolicyRepository.
type PolicyRepo struct {
	db pkgpostgres.Querier
}

// NewPolicyRepo creates a repository backed by PostgreSQL.
func NewPolicyRepo(db pkgpostgres.Querier) *PolicyRepo {
	return &PolicyRepo{db: db}
}

const policyColumns = `
	id, lender_id, name, description, interest_rate, max_amount,
	min_credit_score, min_financial_health, min_vintage_months,
	is_active, created_at, updated_at`

// Save upserts a policy by id.
func (r *PolicyRepo) Save(ctx context.Context, p model.Policy) error {
	query := `
		INSERT INTO policies (` + policyColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name                 = EXCLUDED.name,
			description          = EXCLUDED.description,
			interest_rate        = EXCLUDED.interest_rate,
			max_amount           = EXCLUDED.max_amount,
			min_credit_score     = EXCLUDED.min_credit_score,
			min_financial_health = EXCLUDED.min_financial_health,
			min_vintage_months   = EXCLUDED.min_vintage_months,
			is_active            = EXCLUDED.is_active,
			updated_at           = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		p.ID(), p.LenderID(), p.Name(), p.Description(),
		p.InterestRate(), p.MaxAmount(),
		p.MinCreditScore(), p.MinFinancialHealth().String(), p.MinVintageMonths(),
		p.IsActive(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save policy: %w", err)
	}
	return nil
}

// FindByID retrieves a single policy. Deactivated policies remain
// retrievable so existing applications keep resolving.
func (r *PolicyRepo) FindByID(ctx context.Context, id string) (model.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1`
	p, err := scanPolicy(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Policy{}, fmt.Errorf("policy %s: %w", id, port.ErrNotFound)
	}
	return p, err
}

// FindByLender retrieves a lender's policies, newest first.
func (r *PolicyRepo) FindByLender(ctx context.Context, lenderID string, activeOnly bool) ([]model.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE lender_id = $1`
	if activeOnly {
		// Rows created before the is_active column existed carry NULL and
		// count as active for backward compatibility.
		query += ` AND is_active IS DISTINCT FROM FALSE`
	}
	query += ` ORDER BY created_at DESC`
	return r.scanMany(ctx, query, lenderID)
}

// FindActive lists every policy open for new-application discovery.
func (r *PolicyRepo) FindActive(ctx context.Context) ([]model.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies
		WHERE is_active IS DISTINCT FROM FALSE
		ORDER BY created_at DESC`
	return r.scanMany(ctx, query)
}

func (r *PolicyRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Policy, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query policies: %w", err)
	}
	defer rows.Close()

	var result []model.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanPolicy(s scannable) (model.Policy, error) {
	var (
		id, lenderID, name, description string
		interestRate, maxAmount         decimal.Decimal
		minCreditScore                  int
		minHealthStr                    string
		minVintageMonths                int
		active                          *bool
		createdAt, updatedAt            time.Time
	)

	err := s.Scan(
		&id, &lenderID, &name, &description,
		&interestRate, &maxAmount,
		&minCreditScore, &minHealthStr, &minVintageMonths,
		&active, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Policy{}, err
		}
		return model.Policy{}, fmt.Errorf("scan policy: %w", err)
	}

	isActive := active == nil || *active

	return model.ReconstructPolicy(
		id, lenderID, name, description,
		interestRate, maxAmount,
		minCreditScore, valueobject.HealthRatingOrDefault(minHealthStr), minVintageMonths,
		isActive, createdAt, updatedAt,
	), nil
}
