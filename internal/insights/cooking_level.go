package insights

// Cooking level tiers, highest first
const (
	LevelACook     = "A Cook"
	LevelBetter    = "Better"
	LevelGood      = "Good"
	LevelNotGood   = "Not Good"
	LevelNoRatings = "No Ratings"
)

// CookingLevel classifies a user's average feedback rating.
// Each band includes its lower bound.
func CookingLevel(avg float64) string {
	switch {
	case avg >= 4.5:
		return LevelACook
	case avg >= 3.5:
		return LevelBetter
	case avg >= 2.0:
		return LevelGood
	case avg > 0:
		return LevelNotGood
	default:
		return LevelNoRatings
	}
}
