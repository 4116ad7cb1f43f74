package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastytalk/admin-backend/internal/models"
)

var feedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestDishNameFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"colon", "A recipe you follow was updated: Adobo", "Adobo"},
		{"colon keeps later colons", "Updated: Soup: the sequel", "Soup: the sequel"},
		{"quoted", `The recipe "Sinigang" has a new step`, "Sinigang"},
		{"colon wins over quotes", `Added: "Kare-Kare"`, `"Kare-Kare"`},
		{"empty after colon falls back to quotes", `Check "Pancit" now:`, "Pancit"},
		{"empty after colon and empty quotes", `Added "":`, UnknownDish},
		{"unterminated quote", `The recipe "Lumpia`, UnknownDish},
		{"nothing to parse", "Something happened", UnknownDish},
		{"empty", "", UnknownDish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DishNameFromMessage(tt.message))
		})
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "1 minute ago"},
		{-time.Hour, "1 minute ago"},
		{30 * time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23*time.Hour + 59*time.Minute, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{80 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(feedNow.Add(-tt.ago), feedNow), "ago=%v", tt.ago)
	}
}

func TestRecentActivityCollapsesDuplicates(t *testing.T) {
	older := models.Notification{
		ID:        "n1",
		Title:     models.NotificationTitleDishUpdated,
		Message:   "A recipe you follow was updated: Adobo",
		UserID:    "u1",
		Timestamp: feedNow.Add(-2 * time.Hour),
	}
	newer := older
	newer.ID = "n2"
	newer.UserID = "u2"
	newer.Timestamp = feedNow.Add(-10 * time.Minute)

	items := RecentActivity([]models.Notification{older, newer}, feedNow)

	require.Len(t, items, 1)
	assert.Equal(t, newer.Timestamp, items[0].Timestamp)
	assert.Equal(t, "10 minutes ago", items[0].TimeAgo)
	assert.Equal(t, "Updated dish: Adobo", items[0].Label)
	assert.Equal(t, IconUpdated, items[0].Icon)
}

func TestRecentActivityLimitAndOrder(t *testing.T) {
	var notifications []models.Notification
	for i := 0; i < 9; i++ {
		notifications = append(notifications, models.Notification{
			Title:     models.NotificationTitleDishAdded,
			Message:   fmt.Sprintf("A new recipe is available: Dish %d", i),
			Timestamp: feedNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	// shuffle the input order
	notifications[0], notifications[8] = notifications[8], notifications[0]
	notifications[2], notifications[5] = notifications[5], notifications[2]

	items := RecentActivity(notifications, feedNow)

	require.Len(t, items, MaxActivityItems)
	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("Dish %d", i), item.DishName)
		assert.Equal(t, IconAdded, item.Icon)
		if i > 0 {
			assert.True(t, items[i-1].Timestamp.After(item.Timestamp))
		}
	}
}

func TestRecentActivityGenericTitle(t *testing.T) {
	items := RecentActivity([]models.Notification{
		{Title: "Weekly digest", Message: "Top picks this week", Timestamp: feedNow.Add(-50 * time.Hour)},
	}, feedNow)

	require.Len(t, items, 1)
	assert.Equal(t, IconGeneric, items[0].Icon)
	assert.Equal(t, "Weekly digest", items[0].Label)
	assert.Equal(t, UnknownDish, items[0].DishName)
	assert.Equal(t, "2 days ago", items[0].TimeAgo)
}

func TestRecentActivitySameDishDifferentTitles(t *testing.T) {
	items := RecentActivity([]models.Notification{
		{Title: models.NotificationTitleDishAdded, Message: "A new recipe is available: Adobo", Timestamp: feedNow.Add(-3 * time.Hour)},
		{Title: models.NotificationTitleDishUpdated, Message: "A recipe you follow was updated: Adobo", Timestamp: feedNow.Add(-time.Hour)},
	}, feedNow)

	require.Len(t, items, 2)
	assert.Equal(t, "Updated dish: Adobo", items[0].Label)
	assert.Equal(t, "Added dish: Adobo", items[1].Label)
}

func TestCategories(t *testing.T) {
	got := Categories([]models.Dish{
		{Category: "Soup"}, {Category: "Dessert"}, {Category: ""}, {Category: "Soup"},
	})
	assert.Equal(t, []string{"Dessert", "Soup"}, got)
}
