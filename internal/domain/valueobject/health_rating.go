package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// HealthRating – immutable value object, totally ordered
// ---------------------------------------------------------------------------

// HealthRating represents the ordinal financial-health rating of an MSME.
// The ordering is Poor < Fair < Good < Excellent.
type HealthRating struct {
	value string
	rank  int
}

const (
	healthRatingPoor      = "Poor"
	healthRatingFair      = "Fair"
	healthRatingGood      = "Good"
	healthRatingExcellent = "Excellent"
)

var (
	HealthRatingPoor      = HealthRating{value: healthRatingPoor, rank: 1}
	HealthRatingFair      = HealthRating{value: healthRatingFair, rank: 2}
	HealthRatingGood      = HealthRating{value: healthRatingGood, rank: 3}
	HealthRatingExcellent = HealthRating{value: healthRatingExcellent, rank: 4}
)

var validHealthRatings = map[string]HealthRating{
	healthRatingPoor:      HealthRatingPoor,
	healthRatingFair:      HealthRatingFair,
	healthRatingGood:      HealthRatingGood,
	healthRatingExcellent: HealthRatingExcellent,
}

// NewHealthRating creates a HealthRating from a raw string.
func NewHealthRating(s string) (HealthRating, error) {
	v, ok := validHealthRatings[s]
	if !ok {
		return HealthRating{}, fmt.Errorf("invalid health rating: %q", s)
	}
	return v, nil
}

// HealthRatingOrDefault parses a raw rating, falling back to Fair for
// unknown or empty input. Policies written before the rating enum was
// enforced may carry arbitrary strings.
func HealthRatingOrDefault(s string) HealthRating {
	if v, ok := validHealthRatings[s]; ok {
		return v
	}
	return HealthRatingFair
}

// String returns the string representation of the rating.
func (r HealthRating) String() string { return r.value }

// Rank returns the ordinal rank (Poor=1 .. Excellent=4).
func (r HealthRating) Rank() int { return r.rank }

// IsZero returns true if the rating has not been initialised.
func (r HealthRating) IsZero() bool { return r.value == "" }

// Equal returns true when both ratings carry the same value.
func (r HealthRating) Equal(other HealthRating) bool { return r.value == other.value }

// AtLeast returns true when r ranks at or above other.
func (r HealthRating) AtLeast(other HealthRating) bool { return r.rank >= other.rank }
