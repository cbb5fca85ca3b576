package postgres

import (
	"context"
	"fmt"

	pkgpostgres "github.com/msmebridge/marketplace/pkg/postgres"
)

// ApplicationIDSequence implements port.ApplicationIDSource on a dedicated
// database sequence. Unlike a count-then-format scheme it stays unique under
// concurrent submissions.
type ApplicationIDSequence struct {
	db pkgpostgres.Querier
}

// NewApplicationIDSequence creates a sequence-backed id source.
func NewApplicationIDSequence(db pkgpostgres.Querier) *ApplicationIDSequence {
	return &ApplicationIDSequence{db: db}
}

// NextApplicationID reserves the next sequence value and formats it as
// APP followed by a 6-digit zero-padded number.
func (s *ApplicationIDSequence) NextApplicationID(ctx context.Context) (string, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT nextval('application_id_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next application id: %w", err)
	}
	return fmt.Sprintf("APP%06d", n), nil
}
