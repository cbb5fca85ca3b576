package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/msmebridge/marketplace/internal/domain/model"
	pkgpostgres "github.com/msmebridge/marketplace/pkg/postgres"
)

// SnapshotRepo implements port.SnapshotRepository over the table the
// external analysis pipeline writes into. This service only ever reads it.
type SnapshotRepo struct {
	db pkgpostgres.Querier
}

// NewSnapshotRepo creates a repository backed by PostgreSQL.
func NewSnapshotRepo(db pkgpostgres.Querier) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// FindLatestByMSME returns the most recent snapshot for the MSME, selected
// by generated_at. A missing snapshot is reported as found=false, not an
// error: the scoring core degrades over defaults.
func (r *SnapshotRepo) FindLatestByMSME(ctx context.Context, msmeID string) (model.FinancialHealthSnapshot, bool, error) {
	query := `
		SELECT msme_id, report_id,
		       total_inflow, total_outflow, net_cashflow,
		       average_balance, min_balance, max_balance,
		       cashflow_stability_score, volatility_score,
		       seasonality_detected, stress_indicators, generated_at
		FROM financial_health_snapshots
		WHERE msme_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var snap model.FinancialHealthSnapshot
	err := r.db.QueryRow(ctx, query, msmeID).Scan(
		&snap.MSMEID, &snap.ReportID,
		&snap.TotalInflow, &snap.TotalOutflow, &snap.NetCashflow,
		&snap.AverageBalance, &snap.MinBalance, &snap.MaxBalance,
		&snap.CashflowStabilityScore, &snap.VolatilityScore,
		&snap.SeasonalityDetected, &snap.StressIndicators, &snap.GeneratedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FinancialHealthSnapshot{}, false, nil
	}
	if err != nil {
		return model.FinancialHealthSnapshot{}, false, fmt.Errorf("scan snapshot: %w", err)
	}
	return snap, true, nil
}
