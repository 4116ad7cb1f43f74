package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tastytalk/admin-backend/internal/models"
)

// Weekdays are the chart labels in display order.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayRating is the average feedback rating for one weekday
type DayRating struct {
	Day     string
	Average float64
}

// WeekdayRatings buckets feedback by the weekday of its timestamp and averages each bucket.
// Entries without a rating or timestamp are ignored. Days with no feedback average 0.
func WeekdayRatings(feedback []models.Feedback) [7]DayRating {
	var sums, counts [7]float64
	for _, f := range feedback {
		if f.Rating == 0 || f.Timestamp.IsZero() {
			continue
		}
		i := weekdayIndex(f.Timestamp.Weekday())
		sums[i] += f.Rating
		counts[i]++
	}

	var out [7]DayRating
	for i, day := range Weekdays {
		out[i] = DayRating{Day: day}
		if counts[i] > 0 {
			out[i].Average = round2(sums[i] / counts[i])
		}
	}
	return out
}

// UserAverages returns the unrounded mean rating per user id. Callers classify on
// this value and round only for display.
func UserAverages(feedback []models.Feedback) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, f := range feedback {
		if f.UserID == "" || f.Rating == 0 {
			continue
		}
		sums[f.UserID] += f.Rating
		counts[f.UserID]++
	}

	avgs := make(map[string]float64, len(sums))
	for uid, sum := range sums {
		avgs[uid] = sum / float64(counts[uid])
	}
	return avgs
}

// weekdayIndex maps Go's Sunday-first weekdays onto a Monday-first index.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// round2 rounds half away from zero on the decimal value, so 2.675 becomes 2.68.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
