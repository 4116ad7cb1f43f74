package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tastytalk/admin-backend/internal/models"
)

func genFeedback() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 5),
		gen.IntRange(0, 365),
	).Map(func(vals []interface{}) models.Feedback {
		return models.Feedback{
			UserID:    "u",
			Rating:    float64(vals[0].(int)),
			Timestamp: monday.AddDate(0, 0, vals[1].(int)),
		}
	})
}

func TestWeekdayRatingsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("always seven days in Mon..Sun order", prop.ForAll(
		func(feedback []models.Feedback) bool {
			got := WeekdayRatings(feedback)
			for i, d := range got {
				if d.Day != Weekdays[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFeedback()),
	))

	properties.Property("averages stay within the rating range", prop.ForAll(
		func(feedback []models.Feedback) bool {
			for _, d := range WeekdayRatings(feedback) {
				if d.Average < 0 || d.Average > 5 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFeedback()),
	))

	properties.Property("days without feedback are zero", prop.ForAll(
		func(feedback []models.Feedback) bool {
			present := make(map[int]bool)
			for _, f := range feedback {
				if f.Rating > 0 {
					present[weekdayIndex(f.Timestamp.Weekday())] = true
				}
			}
			for i, d := range WeekdayRatings(feedback) {
				if !present[i] && d.Average != 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFeedback()),
	))

	properties.TestingRun(t)
}

func TestCookingLevelProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	rank := map[string]int{
		LevelNoRatings: 0, LevelNotGood: 1, LevelGood: 2, LevelBetter: 3, LevelACook: 4,
	}

	properties.Property("tier never decreases as the average grows", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return rank[CookingLevel(a)] <= rank[CookingLevel(b)]
		},
		gen.Float64Range(-1, 6),
		gen.Float64Range(-1, 6),
	))

	properties.Property("every average maps to a known tier", prop.ForAll(
		func(avg float64) bool {
			_, ok := rank[CookingLevel(avg)]
			return ok
		},
		gen.Float64(),
	))

	properties.TestingRun(t)
}

func TestRecentActivityProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	genNotification := gopter.CombineGens(
		gen.IntRange(0, 3),
		gen.IntRange(0, 5),
		gen.IntRange(0, 10000),
	).Map(func(vals []interface{}) models.Notification {
		return models.Notification{
			Title:     fmt.Sprintf("title %d", vals[0].(int)),
			Message:   fmt.Sprintf("update: dish %d", vals[1].(int)),
			Timestamp: feedNow.Add(-time.Duration(vals[2].(int)) * time.Minute),
		}
	})

	properties.Property("at most six unique rows, newest first", prop.ForAll(
		func(notifications []models.Notification) bool {
			items := RecentActivity(notifications, feedNow)
			if len(items) > MaxActivityItems {
				return false
			}
			seen := make(map[activityKey]bool)
			for i, item := range items {
				key := activityKey{title: item.Title, dish: item.DishName}
				if seen[key] {
					return false
				}
				seen[key] = true
				if i > 0 && item.Timestamp.After(items[i-1].Timestamp) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genNotification),
	))

	properties.TestingRun(t)
}
